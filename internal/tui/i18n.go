package tui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Languages lists the selectable UI languages. The first one is the fallback.
var Languages = []language.Tag{language.Korean, language.English, language.Japanese}

var matcher = language.NewMatcher(Languages)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"app.darkMode":     "Dark mode",
		"app.lightMode":    "Light mode",
		"filter.all":       "All",
		"filter.active":    "Active",
		"filter.completed": "Completed",
		"form.add":         "Add",
		"form.cancel":      "Cancel",
		"form.description": "Description",
		"form.save":        "Save",
		"form.title":       "Title",
		"form.required":    "Title is required",
		"language.select":  "Language",
		"language.en":      "English",
		"language.ko":      "한국어",
		"language.ja":      "日本語",
		"sort.newest":      "Newest first",
		"sort.oldest":      "Oldest first",
		"sort.titleAsc":    "Title (A-Z)",
		"sort.titleDesc":   "Title (Z-A)",
		"todo.title":       "Todo List",
		"todo.delete":      "delete",
		"todo.edit":        "edit",
		"todo.empty":       "No todos yet.",
		"todo.error":       "Something went wrong. Please try again.",
		"todo.loading":     "Loading...",
		"todo.search":      "Search",
		"todo.sort":        "Sort",
		"todo.status":      "Status",
		"todo.total":       "Total",
	},
	language.Korean: {
		"app.darkMode":     "다크 모드",
		"app.lightMode":    "라이트 모드",
		"filter.all":       "전체",
		"filter.active":    "진행 중",
		"filter.completed": "완료",
		"form.add":         "추가",
		"form.cancel":      "취소",
		"form.description": "설명",
		"form.save":        "저장",
		"form.title":       "제목",
		"form.required":    "제목을 입력하세요",
		"language.select":  "언어",
		"language.en":      "English",
		"language.ko":      "한국어",
		"language.ja":      "日本語",
		"sort.newest":      "최신순",
		"sort.oldest":      "오래된순",
		"sort.titleAsc":    "제목 (가-하)",
		"sort.titleDesc":   "제목 (하-가)",
		"todo.title":       "할 일 목록",
		"todo.delete":      "삭제",
		"todo.edit":        "수정",
		"todo.empty":       "할 일이 없습니다.",
		"todo.error":       "문제가 발생했습니다. 다시 시도하세요.",
		"todo.loading":     "불러오는 중...",
		"todo.search":      "검색",
		"todo.sort":        "정렬",
		"todo.status":      "상태",
		"todo.total":       "전체",
	},
	language.Japanese: {
		"app.darkMode":     "ダークモード",
		"app.lightMode":    "ライトモード",
		"filter.all":       "すべて",
		"filter.active":    "未完了",
		"filter.completed": "完了",
		"form.add":         "追加",
		"form.cancel":      "キャンセル",
		"form.description": "説明",
		"form.save":        "保存",
		"form.title":       "タイトル",
		"form.required":    "タイトルを入力してください",
		"language.select":  "言語",
		"language.en":      "English",
		"language.ko":      "한국어",
		"language.ja":      "日本語",
		"sort.newest":      "新しい順",
		"sort.oldest":      "古い順",
		"sort.titleAsc":    "タイトル (昇順)",
		"sort.titleDesc":   "タイトル (降順)",
		"todo.title":       "ToDoリスト",
		"todo.delete":      "削除",
		"todo.edit":        "編集",
		"todo.empty":       "ToDoはまだありません。",
		"todo.error":       "エラーが発生しました。もう一度お試しください。",
		"todo.loading":     "読み込み中...",
		"todo.search":      "検索",
		"todo.sort":        "並び替え",
		"todo.status":      "状態",
		"todo.total":       "合計",
	},
}

// MatchLanguage picks the closest supported language for a locale such as
// "ja_JP.UTF-8" or "en-GB", falling back to Korean.
func MatchLanguage(locale string) language.Tag {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")

	tag, err := language.Parse(locale)
	if err != nil || locale == "" || locale == "C" || locale == "POSIX" {
		return Languages[0]
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Languages[0]
	}

	return Languages[index]
}

// DetectLanguage reads the usual locale variables through getenv.
func DetectLanguage(getenv func(string) string) language.Tag {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			return MatchLanguage(v)
		}
	}

	return Languages[0]
}

var printers = newPrinters()

func newPrinters() map[language.Tag]*message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(Languages[0]))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}

	printers := make(map[language.Tag]*message.Printer, len(Languages))
	for _, tag := range Languages {
		printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}

	return printers
}

// translate renders key in the supported language closest to lang. Unknown
// keys come back as is.
func translate(lang language.Tag, key string) string {
	_, index, confidence := matcher.Match(lang)
	if confidence == language.No {
		index = 0
	}

	return printers[Languages[index]].Sprintf(key)
}

func nextLanguage(lang language.Tag) language.Tag {
	for i, l := range Languages {
		if l == lang {
			return Languages[(i+1)%len(Languages)]
		}
	}

	return Languages[0]
}

func languageKey(lang language.Tag) string {
	base, _ := lang.Base()
	return "language." + base.String()
}
