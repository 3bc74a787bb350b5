// Команда repairctl - терминальный клиент учёта заявок на ремонт.
// Каждый вызов входит по --login/--password и работает с хранилищем напрямую.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli - состояние одного вызова: хранилище, сервис и сессия
type cli struct {
	login    string
	password string
	output   string
	verbose  bool

	repo    *repository.Repository
	svc     *service.Service
	session service.Session
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "repairctl",
		Short:         "Учёт заявок на ремонт оборудования",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&c.login, "login", "l", "", "Логин")
	cmd.PersistentFlags().StringVarP(&c.password, "password", "p", "", "Пароль")
	cmd.PersistentFlags().StringVarP(&c.output, "output", "o", formatTable, "Формат вывода (table, json, yaml)")
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Подробный лог")
	_ = cmd.MarkPersistentFlagRequired("login")
	_ = cmd.MarkPersistentFlagRequired("password")

	cmd.AddCommand(
		c.requestsCmd(),
		c.createCmd(),
		c.assignCmd(),
		c.statusCmd(),
		c.commentCmd(),
		c.mastersCmd(),
		c.typesCmd(),
		c.exportCmd(),
	)
	return cmd
}

func (c *cli) open(ctx context.Context) error {
	if !validFormat(c.output) {
		return fmt.Errorf("unknown output format %q", c.output)
	}

	logrus.SetOutput(os.Stderr)
	if c.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	c.repo, err = repository.New(cfg.Store)
	if err != nil {
		return err
	}
	if cfg.Store.AutoMigrate {
		if err := c.repo.Migrate(); err != nil {
			return err
		}
	}
	c.svc = service.New(c.repo, service.WithPasswordMode(cfg.Auth.PasswordMode))

	session, err := c.svc.Authenticate(ctx, c.login, c.password)
	if err != nil {
		return err
	}
	c.session = *session
	return nil
}

func (c *cli) close() error {
	if c.repo == nil {
		return nil
	}
	return c.repo.Close()
}

// explain переводит ошибки хранилища в сообщения для пользователя
func explain(err error) error {
	switch {
	case errors.Is(err, repository.ErrStoreBusy):
		return errors.New("база данных занята другим пользователем, повторите попытку позже")
	case errors.Is(err, repository.ErrNotFound):
		return errors.New("заявка не найдена")
	case errors.Is(err, repository.ErrIntegrity):
		return fmt.Errorf("ошибка целостности данных: %w", err)
	default:
		return err
	}
}
