package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dfagundes/prodboard/internal/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the production database",
		Long:  "Creates the producao table if it does not exist yet.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to prodboard config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, _, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	fmt.Fprintf(cmd.OutOrStdout(), "Database ready (%s), %d tables migrated\n",
		describeDatabase(cfg), len(db.AllModels()))
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every production record",
		Long:  "Clears the producao table. Asks for confirmation unless --yes is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to prodboard config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, yes bool) error {
	cfg, gormDB, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to reset without --yes on a non-interactive stdin")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "This deletes ALL records in %s. Type 'yes' to continue: ",
			describeDatabase(cfg))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	count, err := st.DeleteAll()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records\n", count)
	return nil
}
