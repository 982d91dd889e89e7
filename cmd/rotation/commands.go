package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/spreadsheet"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/rotation"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/reporting"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
)

func newRootCmd(load appLoader) *cobra.Command {
	var a *app

	rootCmd := &cobra.Command{
		Use:           "rotation",
		Short:         "Rotação de carteiras de clientes entre vendedores",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := load(cmd.Context())
			if err != nil {
				return err
			}
			a = loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil && a.close != nil {
				a.close()
			}
		},
	}

	current := func() *app { return a }

	rootCmd.AddCommand(
		newSalespersonCmd(current),
		newRunCmd(current),
		newReportCmd(current),
	)

	return rootCmd
}

func newSalespersonCmd(current func() *app) *cobra.Command {
	salespersonCmd := &cobra.Command{
		Use:     "salesperson",
		Aliases: []string{"vendedor"},
		Short:   "Gerencia o cadastro de vendedores",
	}

	var listGroup string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os vendedores cadastrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := current().registry

			if listGroup != "" {
				group, err := parseGroup(listGroup)
				if err != nil {
					return err
				}
				names, err := registry.ListByGroup(cmd.Context(), group)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			salespeople, err := registry.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, salesperson := range salespeople {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", salesperson.Name, salesperson.Group)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listGroup, "group", "", "filtra por grupo (distribuicao, corporativo, outro)")

	var addGroup string
	addCmd := &cobra.Command{
		Use:   "add [nome]",
		Short: "Cadastra um vendedor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := parseGroup(addGroup)
			if err != nil {
				return err
			}

			salesperson, err := current().registry.Create(cmd.Context(), &domain.CreateSalespersonRequest{
				Name:  strings.Join(args, " "),
				Group: group,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Vendedor %s cadastrado em %s\n", salesperson.Name, salesperson.Group)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addGroup, "group", domain.SalesGroupDistribution.Slug(), "grupo do vendedor")

	removeCmd := &cobra.Command{
		Use:   "remove [nome]",
		Short: "Remove um vendedor do cadastro",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := current().registry.Delete(cmd.Context(), name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Vendedor %s removido\n", name)
			return nil
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Copia os vendedores ativos do data warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := current().registry.SyncFromWarehouse(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), response.Message)
			return nil
		},
	}

	salespersonCmd.AddCommand(listCmd, addCmd, removeCmd, syncCmd)
	return salespersonCmd
}

type runFlags struct {
	group     string
	reference string
	cap       int
	out       string
	dryRun    bool
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.group, "group", domain.SalesGroupDistribution.Slug(), "grupo de vendas (distribuicao, corporativo, outro)")
	cmd.Flags().StringVar(&f.reference, "reference", "", "planilha de referência com Raiz_CNPJ, Nome_Vendedor e Data_Entrou_Carteira")
	cmd.Flags().IntVar(&f.cap, "cap", -1, "máximo de contas por vendedor (padrão da configuração quando omitido)")
	cmd.Flags().StringVar(&f.out, "out", "", "arquivo de saída")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "sorteia sem gravar histórico nem arquivos")
}

// request monta a rodada a partir das flags
func (f *runFlags) request(a *app) (*rotating.RunRequest, error) {
	group, err := parseGroup(f.group)
	if err != nil {
		return nil, err
	}

	request := &rotating.RunRequest{
		Group:  group,
		DryRun: f.dryRun,
	}

	if f.cap >= 0 {
		perPersonCap := f.cap
		request.Cap = &perPersonCap
	}

	if f.reference != "" {
		file, err := os.Open(f.reference)
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir planilha de referência: %w", err)
		}
		defer file.Close()

		request.Reference, err = spreadsheet.ReadReference(file, a.cfg.Rotation.ReferenceSheetName)
		if err != nil {
			return nil, err
		}
	}

	return request, nil
}

func newRunCmd(current func() *app) *cobra.Command {
	flags := &runFlags{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Executa a rotação de um grupo e grava a planilha de contas rotacionadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			request, err := flags.request(a)
			if err != nil {
				return err
			}

			run, err := a.rotator.Run(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rotating.Summary(run))

			if flags.dryRun {
				return nil
			}

			var content bytes.Buffer
			fileName, err := a.rotator.WriteRotated(&content, request.Group)
			if err != nil {
				return err
			}

			path := outputPath(flags.out, a.cfg.Rotation.OutputDir, fileName)
			if err := writeFile(path, content.Bytes()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Contas rotacionadas gravadas em %s\n", path)
			return nil
		},
	}
	flags.bind(runCmd)

	return runCmd
}

func newReportCmd(current func() *app) *cobra.Command {
	flags := &runFlags{}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Executa a rotação e gera os relatórios de carteira por vendedor",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			request, err := flags.request(a)
			if err != nil {
				return err
			}

			run, err := a.rotator.Run(cmd.Context(), request)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rotating.Summary(run))

			// Simulação não fica registrada como última rodada, o relatório sai da própria rodada
			if flags.dryRun {
				report := rotation.BuildFromRun(run, a.cfg.Rotation.CutoffDays)
				for _, salesperson := range report.Salespeople {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d contas\n", salesperson.SalespersonName, len(salesperson.Rows))
				}
				return nil
			}

			bundle, err := a.reporter.Bundle(cmd.Context(), &reporting.Request{
				Group:     request.Group,
				Reference: request.Reference,
				Save:      true,
			})
			if err != nil {
				return err
			}

			path := outputPath(flags.out, a.cfg.Rotation.OutputDir, bundle.FileName)
			if err := writeFile(path, bundle.Content); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Relatórios gravados em %s\n", path)
			return nil
		},
	}
	flags.bind(reportCmd)

	return reportCmd
}

func parseGroup(value string) (domain.SalesGroup, error) {
	group, ok := domain.SalesGroupFromSlug(value)
	if !ok {
		return "", fmt.Errorf("grupo de vendas inválido: %q (aceitos: distribuicao, corporativo, outro)", value)
	}
	return group, nil
}

func outputPath(out, dir, fileName string) string {
	if out != "" {
		return out
	}
	return filepath.Join(dir, fileName)
}

func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("erro ao gravar %s: %w", path, err)
	}
	return nil
}
