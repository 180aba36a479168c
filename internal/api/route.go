package api

import "net/http"

// Resource templates, as an API gateway reports them.
const (
	ResourceTodos = "/todos"
	ResourceTodo  = "/todos/{id}"
)

// Operation is the result of routing a request.
type Operation int

const (
	OpUnmatched Operation = iota
	OpList
	OpGet
	OpCreate
	OpUpdate
	OpDelete
)

var operationNames = map[Operation]string{
	OpUnmatched: "unmatched",
	OpList:      "list",
	OpGet:       "get",
	OpCreate:    "create",
	OpUpdate:    "update",
	OpDelete:    "delete",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}

	return "unmatched"
}

// Route maps a method and resource template to an operation.
func Route(method, resource string) Operation {
	switch resource {
	case ResourceTodos:
		switch method {
		case http.MethodGet:
			return OpList
		case http.MethodPost:
			return OpCreate
		}
	case ResourceTodo:
		switch method {
		case http.MethodGet:
			return OpGet
		case http.MethodPut:
			return OpUpdate
		case http.MethodDelete:
			return OpDelete
		}
	}

	return OpUnmatched
}
