package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Show the document registry and project pairs",
	Long: `Lists every ingested document with its extraction method and
labelling, followed by the requirement/response pairing per project.`,
	RunE: runRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	registry, err := ingestService.Registry(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	mapping, err := ingestService.Mapping(ctx)
	if err != nil {
		return fmt.Errorf("load mapping: %w", err)
	}

	if len(registry) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", len(registry))
	for _, id := range sortedKeys(registry) {
		e := registry[id]
		cmd.Printf("  %s\n", id)
		cmd.Printf("    File:     %s\n", e.File)
		cmd.Printf("    Folder:   %s\n", e.Folder)
		cmd.Printf("    Method:   %s\n", e.Type)
		cmd.Printf("    Status:   %s\n", e.Status)
		cmd.Printf("    Category: %s\n", e.Category)
		cmd.Printf("    Project:  %s\n", e.ProjectNumber)
		cmd.Println()
	}

	cmd.Printf("Projects (%d):\n\n", len(mapping))
	for _, project := range sortedKeys(mapping) {
		m := mapping[project]
		pairing := "incomplete"
		if m.Complete() {
			pairing = "complete"
		}
		cmd.Printf("  Project %s (%s, %s)\n", project, m.Status, pairing)
		if m.RequirementDocID != "" {
			cmd.Printf("    Requirement: %s\n", m.RequirementDocID)
		}
		if m.ResponseDocID != "" {
			cmd.Printf("    Response:    %s\n", m.ResponseDocID)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
