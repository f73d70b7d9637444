package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/officedesk/officedesk/internal/config"
	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/doctor"
	"github.com/officedesk/officedesk/internal/domain/scheduling"
	"github.com/officedesk/officedesk/internal/platform/backup"
	"github.com/officedesk/officedesk/internal/platform/report"
	"github.com/officedesk/officedesk/internal/platform/sandbox"
)

// withApp loads the configuration, opens the store and runs fn against it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx, cfg, newLogger(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func customerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Inspect and remove customers",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List customers by last and first name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			withBalance, _ := cmd.Flags().GetBool("balance")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				items, err := a.customers.SearchCustomers(ctx, query, withBalance)
				if err != nil {
					return err
				}
				printCustomers(cmd.OutOrStdout(), items, withBalance)
				return nil
			})
		},
	}
	listCmd.Flags().StringP("query", "q", "", "Case-insensitive filter on name or phone")
	listCmd.Flags().Bool("balance", false, "Include each customer's balance")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a customer with their therapy ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.customers.GetCustomer(ctx, id)
				if err != nil {
					return err
				}
				ledger, err := a.customers.ListTherapies(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", c.FullName(), c.ID)
				sheet, err := report.Build(c, nil, nil, nil)
				if err != nil {
					return err
				}
				for _, f := range sheet.Fields {
					fmt.Fprintf(out, "  %-16s %s\n", f.Label+":", f.Value)
				}
				fmt.Fprintln(out)
				printTherapies(out, ledger)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer and their whole ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.customers.DeleteCustomer(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted customer %s.\n", id)
				return nil
			})
		},
	})

	return cmd
}

func therapyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "therapy",
		Short: "Inspect therapy ledgers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <customer-id>",
		Short: "List a customer's therapies by visit date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if _, err := a.customers.GetCustomer(ctx, id); err != nil {
					return err
				}
				ledger, err := a.customers.ListTherapies(ctx, id)
				if err != nil {
					return err
				}
				printTherapies(cmd.OutOrStdout(), ledger)
				return nil
			})
		},
	})
	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set the doctor profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the doctor profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				p, err := a.doctor.GetProfile(ctx)
				if errors.Is(err, doctor.ErrProfileNotSet) {
					fmt.Fprintln(cmd.OutOrStdout(), "No doctor profile set.")
					return nil
				}
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), p)
				return nil
			})
		},
	})

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Save the doctor profile, replacing every field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &doctor.Profile{}
			p.FirstName, _ = cmd.Flags().GetString("first-name")
			p.LastName, _ = cmd.Flags().GetString("last-name")
			p.Address, _ = cmd.Flags().GetString("address")
			p.Speciality, _ = cmd.Flags().GetString("speciality")
			p.Telephone, _ = cmd.Flags().GetString("telephone")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.doctor.SaveProfile(ctx, p); err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	setCmd.Flags().String("first-name", "", "Doctor's first name")
	setCmd.Flags().String("last-name", "", "Doctor's last name")
	setCmd.Flags().String("address", "", "Practice address")
	setCmd.Flags().String("speciality", "", "Speciality")
	setCmd.Flags().String("telephone", "", "Practice telephone")
	cmd.AddCommand(setCmd)

	return cmd
}

func appointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Preview and add appointments",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the earliest appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				d, err := a.schedule.Dashboard(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-20s %s\n", "DATE", "PATIENT")
				for _, ap := range d.Upcoming {
					fmt.Fprintf(out, "%-20s %s\n", ap.AppointmentDate, ap.PatientName)
				}
				fmt.Fprintf(out, "\nTotal patients: %d\n", d.TotalPatients)
				return nil
			})
		},
	}
	listCmd.Flags().Int("limit", 0, "Number of appointments to show (0 uses UPCOMING_LIMIT)")
	cmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ap := &scheduling.Appointment{}
			ap.PatientName, _ = cmd.Flags().GetString("patient")
			ap.AppointmentDate, _ = cmd.Flags().GetString("date")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.schedule.CreateAppointment(ctx, ap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added appointment %s.\n", ap.ID)
				return nil
			})
		},
	}
	addCmd.Flags().String("patient", "", "Patient name")
	addCmd.Flags().String("date", "", "Appointment date, YYYY-MM-DD or YYYY-MM-DD HH:MM")
	cmd.AddCommand(addCmd)

	return cmd
}

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Store file copy and demo data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <target>",
		Short: "Copy the store file to target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sqliteConfig()
			if err != nil {
				return err
			}
			n, err := backup.Export(cfg.DBPath, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bytes to %s.\n", n, args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <source>",
		Short: "Replace the store file with source",
		Long:  "Replace the store file with source. Stop the server first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sqliteConfig()
			if err != nil {
				return err
			}
			n, err := backup.Import(args[0], cfg.DBPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bytes into %s.\n", n, cfg.DBPath)
			return nil
		},
	})

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with generated demo customers and appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seedCfg := sandbox.DefaultSeedConfig()
			seedCfg.Customers, _ = cmd.Flags().GetInt("customers")
			seedCfg.TherapiesPerCustomer, _ = cmd.Flags().GetInt("therapies")
			seedCfg.Appointments, _ = cmd.Flags().GetInt("appointments")
			seedCfg.Seed, _ = cmd.Flags().GetInt64("seed")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				result, err := sandbox.NewSeeder(seedCfg, a.customers, a.schedule).Seed(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d customers, %d therapies and %d appointments in %s.\n",
					result.Customers, result.Therapies, result.Appointments, result.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	defaults := sandbox.DefaultSeedConfig()
	seedCmd.Flags().Int("customers", defaults.Customers, "Number of customers")
	seedCmd.Flags().Int("therapies", defaults.TherapiesPerCustomer, "Therapies per customer")
	seedCmd.Flags().Int("appointments", defaults.Appointments, "Number of appointments")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
	cmd.AddCommand(seedCmd)

	return cmd
}

func sqliteConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Driver() != config.DriverSQLite {
		return nil, fmt.Errorf("store file copy is only available for the SQLite store")
	}
	return cfg, nil
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <customer-id>",
		Short: "Write a customer sheet as PDF, HTML or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			fields, _ := cmd.Flags().GetStringSlice("fields")
			outPath, _ := cmd.Flags().GetString("out")
			if _, err := report.ContentType(format); err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				fetcher := &reportDataFetcher{customers: a.customers, doctor: a.doctor}
				rec, err := fetcher.FetchCustomerRecord(ctx, id)
				if err != nil {
					return err
				}
				sheet, err := report.Build(rec.Customer, rec.Therapies, rec.Profile, fields)
				if err != nil {
					return err
				}
				if outPath == "" {
					outPath = report.Filename(rec.Customer, format)
				}
				if err := writeReport(outPath, sheet, format); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", outPath)
				return nil
			})
		},
	}
	cmd.Flags().String("format", report.FormatPDF, "Output format: pdf, html or xlsx")
	cmd.Flags().StringSlice("fields", nil, "Customer fields to include (default all): "+strings.Join(report.FieldNames(), ", "))
	cmd.Flags().StringP("out", "o", "", "Output file (default <last>_<first>.<format>)")
	return cmd
}

func writeReport(path string, sheet *report.Sheet, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, sheet, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func printCustomers(out io.Writer, items []*customer.Customer, withBalance bool) {
	if withBalance {
		fmt.Fprintf(out, "%-36s %-30s %-16s %10s\n", "ID", "NAME", "PHONE", "BALANCE")
	} else {
		fmt.Fprintf(out, "%-36s %-30s %s\n", "ID", "NAME", "PHONE")
	}
	for _, c := range items {
		if withBalance && c.Balance != nil {
			fmt.Fprintf(out, "%-36s %-30s %-16s %10s\n", c.ID, c.FullName(), c.Phone, c.Balance.StringFixed(2))
			continue
		}
		fmt.Fprintf(out, "%-36s %-30s %s\n", c.ID, c.FullName(), c.Phone)
	}
}

func printTherapies(out io.Writer, ledger []*customer.Therapy) {
	fmt.Fprintf(out, "%-12s %-6s %-30s %10s %10s %10s  %s\n", "DATE", "TOOTH", "DESCRIPTION", "PAYMENT", "COST", "DISCOUNT", "COMMENT")
	for _, t := range ledger {
		fmt.Fprintf(out, "%-12s %-6s %-30s %10s %10s %10s  %s\n",
			t.VisitDate, t.Tooth, t.Description,
			t.Payment.StringFixed(2), t.Cost.StringFixed(2), t.Discount.StringFixed(2), t.Comment)
	}
	sum := customer.Summarize(ledger)
	fmt.Fprintf(out, "%-50s %10s %10s %10s\n", "TOTAL",
		sum.Payments.StringFixed(2), sum.Costs.StringFixed(2), sum.Discounts.StringFixed(2))
	fmt.Fprintf(out, "%-50s %10s\n", "OWED", sum.Balance.StringFixed(2))
}

func printProfile(out io.Writer, p *doctor.Profile) {
	fmt.Fprintf(out, "Name:       %s\n", p.FullName())
	fmt.Fprintf(out, "Speciality: %s\n", p.Speciality)
	fmt.Fprintf(out, "Address:    %s\n", p.Address)
	fmt.Fprintf(out, "Telephone:  %s\n", p.Telephone)
}
