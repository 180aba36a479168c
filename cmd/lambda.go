package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"github.com/timada-org/todo/internal/api"
	"github.com/timada-org/todo/internal/gateway"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve API Gateway proxy events as an AWS Lambda function",

	Run: func(cmd *cobra.Command, args []string) {
		config, logger := loadConfig()

		s, err := openStore(config, logger)
		if err != nil {
			logger.Fatal("opening store", "driver", config.Store.Driver, "err", err)
		}
		defer s.Close()

		handler := gateway.New(api.NewDispatcher(s, logger, nil), logger)
		lambda.Start(handler.Handle)
	},
}
