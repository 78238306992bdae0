// Command explay-mockctl inspects and seeds the state document used by the
// mock GameServices counterpart, so test identities and records can be
// prepared without running a game.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/explay-project/sdk/mockserver/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var statePath string

	rootCmd := &cobra.Command{
		Use:           "explay-mockctl",
		Short:         "Inspect and seed the explay mock GameServices state",
		Long:          "explay-mockctl manages the durable state document backing the mock GameServices counterpart: the mock session identity and the per-user key/value records.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&statePath, "state", store.DefaultPath, "path to the mock state document")

	rootCmd.AddCommand(
		newUserCmd(&statePath),
		newDataCmd(&statePath),
	)

	return rootCmd
}

func openStore(path string) (*store.File, error) {
	f, err := store.Open(store.Config{Path: path})
	if err != nil {
		return nil, fmt.Errorf("open state document: %w", err)
	}
	return f, nil
}

func newUserCmd(statePath *string) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Show the mock session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck

			identity := f.Identity()
			fmt.Fprintf(cmd.OutOrStdout(), "signedIn: %t\nuserId:   %d\nusername: %s\navatar:   %s\n",
				identity.SignedIn, identity.UserID, identity.Username, identity.Avatar)
			return nil
		},
	}

	var (
		signedIn bool
		userID   int
		username string
		avatar   string
	)

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update the mock session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck

			identity := f.Identity()
			if cmd.Flags().Changed("signed-in") {
				identity.SignedIn = signedIn
			}
			if cmd.Flags().Changed("id") {
				identity.UserID = userID
			}
			if cmd.Flags().Changed("name") {
				identity.Username = username
			}
			if cmd.Flags().Changed("avatar") {
				identity.Avatar = avatar
			}

			if err := f.SetIdentity(identity); err != nil {
				return fmt.Errorf("update identity: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "identity updated")
			return nil
		},
	}

	setCmd.Flags().BoolVar(&signedIn, "signed-in", true, "whether the mock user is signed in")
	setCmd.Flags().IntVar(&userID, "id", 1, "mock user id")
	setCmd.Flags().StringVar(&username, "name", "TestUser", "mock username")
	setCmd.Flags().StringVar(&avatar, "avatar", "", "mock avatar URL")

	userCmd.AddCommand(setCmd)
	return userCmd
}

func newDataCmd(statePath *string) *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the mock key/value records",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all stored records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck

			records := f.Records()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, r := range records {
				visibility := "private"
				if r.Public {
					visibility = "public"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Key, r.Value, visibility)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "emit records as JSON")

	var public bool
	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Upsert a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck

			if err := f.Set(store.Record{Key: args[0], Value: args[1], Public: public}); err != nil {
				return fmt.Errorf("set record: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
			return nil
		},
	}
	setCmd.Flags().BoolVar(&public, "public", false, "mark the record as public")

	deleteCmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck

			if err := f.Delete(args[0]); err != nil {
				return fmt.Errorf("delete record: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	dataCmd.AddCommand(listCmd, setCmd, deleteCmd)
	return dataCmd
}
