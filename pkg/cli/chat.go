package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	chatuc "github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/chat"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	var (
		cfg    config
		chatID model.ChatID
		userID model.UserID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "chat-id",
			Aliases:     []string{"id"},
			Usage:       "Chat ID to converse with",
			Sources:     cli.EnvVars("DOCTALKER_CHAT_ID"),
			Destination: (*string)(&chatID),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "User ID to act as",
			Sources:     cli.EnvVars("DOCTALKER_USER_ID"),
			Destination: (*string)(&userID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive terminal session against a chat",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			chats := chatuc.New(repo)
			queries := query.New(repo, chats, storage, gemini, broadcast.NewHub())

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			fmt.Fprintf(c.Root().Writer, "Chat session started. Type 'exit' to quit.\n")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				if line == "exit" {
					break
				}
				if line == "" {
					continue
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " thinking..."
				sp.Start()

				increments, err := queries.Answer(ctx, query.Input{
					UserID: userID,
					ChatID: chatID,
					Query:  line,
				})
				sp.Stop()
				if err != nil {
					return goerr.Wrap(err, "failed to answer query")
				}

				for _, msg := range increments {
					fmt.Fprint(c.Root().Writer, msg.Content)
				}
				fmt.Fprintln(c.Root().Writer)
			}

			fmt.Fprintf(c.Root().Writer, "\nChat session completed\n")
			return nil
		},
	}
}
