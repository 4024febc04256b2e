package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/dropzone/internal/presentation/graph"
	"github.com/aretw0/dropzone/internal/presentation/tui"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted builder sessions",
	Long:  `List, inspect, and remove builder sessions held by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openStore()
		if err != nil {
			return err
		}
		defer closer()

		sessions, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		snaps := make([]*domain.Snapshot, 0, len(sessions))
		for _, id := range sessions {
			snap, err := store.Load(cmd.Context(), id)
			if errors.Is(err, domain.ErrSessionNotFound) {
				continue // removed since List
			}
			if err != nil {
				return fmt.Errorf("loading session '%s': %w", id, err)
			}
			snaps = append(snaps, snap)
		}
		fmt.Fprint(out, tui.SessionTable(snaps))
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the drag session and drop indicator of a session",
	Long: `Prints the session snapshot as JSON. With --tree, prints a Mermaid chart of
the given page tree (JSON) with the dragged node and drop target highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openStore()
		if err != nil {
			return err
		}
		defer closer()

		snap, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading session '%s': %w", args[0], err)
		}

		treePath, _ := cmd.Flags().GetString("tree")
		if treePath == "" {
			return printJSON(cmd, snap)
		}
		data, err := os.ReadFile(treePath)
		if err != nil {
			return err
		}
		var root domain.ComponentNode
		if err := json.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidNode, treePath, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(&root, graph.OverlayFrom(snap)))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openStore()
		if err != nil {
			return err
		}
		defer closer()

		var failed int
		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", sessionID, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sessions could not be removed", failed, len(args))
		}
		return nil
	},
}

func openStore() (ports.SnapshotStore, func() error, error) {
	store, _, closer, err := newStore(cfg)
	return store, closer, err
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionInspectCmd.Flags().String("tree", "", "Page tree JSON file to chart with the session overlay")
}
