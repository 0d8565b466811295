package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/model"
	"github.com/cleberrangel/total-reports-api/internal/service"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// UpstreamFactory cria o cliente 3C Plus só quando um comando precisa dele
type UpstreamFactory func() (client.Upstream, error)

// NewRootCommand monta a árvore de comandos do total-reports
func NewRootCommand(newUpstream UpstreamFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "total-reports",
		Short: "Relatórios de ligações do 3C Plus",
		Long: `Relatórios de ligações do 3C Plus

Executa o mesmo pipeline da API (impersonate, paginação e contagem)
direto do terminal, sem passar pelo token interno.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCountCommand(newUpstream))
	return rootCmd
}

func newCountCommand(newUpstream UpstreamFactory) *cobra.Command {
	var req model.ReportRequest
	var asJSON bool

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Conta as ligações de uma empresa no período",
		Example: `  total-reports count --company-id 42 --start-date 2024-01-01 --end-date 2024-01-31
  total-reports count --company-id 42 --start-date 2024-01-01 --end-date 2024-01-31 --status answered --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			upstream, err := newUpstream()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			result, err := service.NewReportService(upstream).Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			writeTable(cmd.OutOrStdout(), result)
			color.Green("✓ %d ligações encontradas", result.TotalCalls)
			return nil
		},
	}

	countCmd.Flags().StringVar(&req.CompanyID, "company-id", "", "ID da empresa no 3C Plus")
	countCmd.Flags().StringVar(&req.StartDate, "start-date", "", "Data inicial")
	countCmd.Flags().StringVar(&req.EndDate, "end-date", "", "Data final")
	countCmd.Flags().StringVar(&req.Status, "status", "", "Filtro de status (vazio = todos)")
	countCmd.Flags().BoolVar(&asJSON, "json", false, "Saída em JSON")

	countCmd.MarkFlagRequired("company-id")
	countCmd.MarkFlagRequired("start-date")
	countCmd.MarkFlagRequired("end-date")

	return countCmd
}

func writeJSON(out io.Writer, result *model.ReportResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func writeTable(out io.Writer, result *model.ReportResult) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Empresa", "De", "Até", "Status", "Total"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{
		result.Company,
		result.Period.From,
		result.Period.To,
		result.Status,
		strconv.Itoa(result.TotalCalls),
	})
	table.Render()
}
