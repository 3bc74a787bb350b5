package main

import (
	"fmt"
	"os"
	"strconv"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/dto"
	"repairdesk/internal/app/report"
	"repairdesk/internal/app/service"

	"github.com/spf13/cobra"
)

func (c *cli) requestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "Показать заявки по роли пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.svc.View(cmd.Context(), c.session)
			if err != nil {
				return explain(err)
			}
			return c.printTable(cmd.OutOrStdout(), table)
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var in service.NewRequestInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать заявку",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := c.svc.CreateRequest(cmd.Context(), c.session, in)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Заявка №%d создана\n", request.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.EquipmentTypeID, "type", 0, "ID типа оборудования")
	cmd.Flags().StringVar(&in.Model, "model", "", "Модель")
	cmd.Flags().StringVar(&in.Problem, "problem", "", "Описание проблемы")
	cmd.Flags().StringVar(&in.ClientName, "client", "", "ФИО клиента (для оператора)")
	cmd.Flags().StringVar(&in.ClientPhone, "phone", "", "Телефон клиента (для оператора)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}

func (c *cli) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign REQUEST_ID MASTER_ID",
		Short: "Назначить мастера на заявку",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}
			masterID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := c.svc.AssignMaster(cmd.Context(), c.session, requestID, masterID); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Мастер %d назначен на заявку №%d\n", masterID, requestID)
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status REQUEST_ID STATUS",
		Short: "Изменить статус заявки (1 - в ремонте, 2 - готова к выдаче, 3 - новая)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid status %q", args[1])
			}
			if err := c.svc.ChangeStatus(cmd.Context(), c.session, requestID, ds.Status(status)); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Статус заявки №%d: %s\n", requestID, ds.Status(status))
			return nil
		},
	}
}

func (c *cli) commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment REQUEST_ID MESSAGE",
		Short: "Добавить комментарий к заявке",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.svc.AddComment(cmd.Context(), c.session, requestID, args[1]); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Комментарий добавлен")
			return nil
		},
	}
}

func (c *cli) mastersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "masters",
		Short: "Список мастеров",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			masters, err := c.svc.Masters(cmd.Context(), c.session)
			if err != nil {
				return explain(err)
			}
			rows := make([][]string, len(masters))
			list := make([]dto.MasterResponse, len(masters))
			for i, m := range masters {
				list[i] = dto.MasterResponse{ID: m.ID, FIO: m.FIO, Phone: m.PhoneOrEmpty()}
				rows[i] = []string{strconv.Itoa(m.ID), m.FIO, m.PhoneOrEmpty()}
			}
			return c.printList(cmd.OutOrStdout(), []string{"ID", "ФИО", "Телефон"}, rows, list)
		},
	}
}

func (c *cli) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Типы оборудования",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := c.svc.EquipmentTypes(cmd.Context())
			if err != nil {
				return explain(err)
			}
			rows := make([][]string, len(types))
			list := make([]dto.EquipmentTypeResponse, len(types))
			for i, t := range types {
				list[i] = dto.EquipmentTypeResponse{ID: t.ID, Name: t.Name}
				rows[i] = []string{strconv.Itoa(t.ID), t.Name}
			}
			return c.printList(cmd.OutOrStdout(), []string{"ID", "Тип"}, rows, list)
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Выгрузить заявки в Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.svc.View(cmd.Context(), c.session)
			if err != nil {
				return explain(err)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := report.WriteTable(f, table); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Выгружено заявок: %d\n", len(table.Rows))
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
