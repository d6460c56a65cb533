package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dashboard/internal/backend"
	"dashboard/internal/chart"
	"dashboard/internal/config"
	"dashboard/internal/storage"
	"dashboard/internal/worker"
)

func (a *app) newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the SQL backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch a.cfg.DataBackend {
			case config.BackendSQLite:
				if err := storage.RunMigrations(a.cfg.SQLiteDBPath); err != nil {
					return err
				}
			case config.BackendPostgres:
				if err := storage.RunPostgresMigrations(a.cfg.PostgresDSN); err != nil {
					return err
				}
			default:
				return fmt.Errorf("backend %q has no schema to migrate", a.cfg.DataBackend)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", a.cfg.DataBackend)
			return nil
		},
	}
}

func (a *app) newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the seed fixture into the SQL backend",
		Long: `Upserts customers and invoices from the fixture and replaces the revenue
series. Running it twice leaves the same data behind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Cleanup()

			seeder, ok := res.Backend.(backend.Seeder)
			if !ok || a.cfg.DataBackend == config.BackendMemory {
				return fmt.Errorf("backend %q cannot be seeded persistently", a.cfg.DataBackend)
			}
			if err := backend.SeedBackend(cmd.Context(), seeder, a.cfg.SeedFile); err != nil {
				return err
			}
			name := a.cfg.SeedFile
			if name == "" {
				name = "built-in sample"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s backend from %s\n", a.cfg.DataBackend, name)
			return nil
		},
	}
}

func (a *app) newRevenueCommand() *cobra.Command {
	var svgPath, xlsxPath string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Print the revenue series with its derived axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Cleanup()

			view, err := chart.NewRenderer(res.Backend, chart.WithHeight(a.cfg.ChartHeight)).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch revenue: %w", err)
			}

			out := cmd.OutOrStdout()
			if view.Empty {
				fmt.Fprintln(out, view.Notice)
			} else {
				fmt.Fprintf(out, "axis: top %s, step %s, %d px\n",
					chart.FormatTick(view.Axis.Top), chart.FormatTick(view.Axis.Step), view.ChartHeight)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MONTH\tREVENUE\tHEIGHT")
				for _, b := range view.Bars {
					fmt.Fprintf(tw, "%s\t%s\t%.2f\n", b.Period, b.Amount, b.Height)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if svgPath != "" {
				f, err := os.Create(svgPath)
				if err != nil {
					return err
				}
				err = chart.RenderSVG(f, view)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
			}
			if xlsxPath != "" {
				data, err := chart.BuildXLSX(view)
				if err != nil {
					return fmt.Errorf("build xlsx: %w", err)
				}
				if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart as SVG to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the series to this .xlsx path")
	return cmd
}

func (a *app) newMirrorCommand() *cobra.Command {
	mirror := &cobra.Command{
		Use:   "mirror",
		Short: "Inspect or rebuild the Google Sheets invoice mirror",
	}

	backfill := &cobra.Command{
		Use:   "backfill",
		Short: "Append every stored invoice to the mirror",
		Long: `Appends one row per invoice, stamped now, to the current year's tab.
Use it once after enabling the mirror; later edits arrive through AMQP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.opts.OpenMirror(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("open mirror: %w", err)
			}
			res, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Cleanup()

			n, err := worker.NewMirrorWorker(m, nil, a.logger).Backfill(cmd.Context(), res.Backend)
			fmt.Fprintf(cmd.OutOrStdout(), "mirrored %d invoices\n", n)
			return err
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the rows of the current year's mirror tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.opts.OpenMirror(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("open mirror: %w", err)
			}
			rows, err := m.ListRows(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "mirror is empty")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIMESTAMP\tINVOICE\tCUSTOMER\tAMOUNT\tSTATUS")
			for _, r := range rows {
				v := r.Values()
				fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\n", v[0], v[1], v[2], v[3], v[4])
			}
			return tw.Flush()
		},
	}

	mirror.AddCommand(backfill, list)
	return mirror
}
