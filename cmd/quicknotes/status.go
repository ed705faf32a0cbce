package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
	"github.com/aretw0/quicknotes/pkg/adapters/fs"
	"github.com/aretw0/quicknotes/pkg/adapters/sqlite"
	"github.com/aretw0/quicknotes/pkg/core"
)

var statusMermaid bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the store",
	Long:  `Print the introspection state of the application and its store as JSON, or as a Mermaid diagram with --mermaid.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := mustOpenApp(cmd.Context())
		defer app.Close()

		state, _ := app.State().(quicknotes.AppState)

		if statusMermaid {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "quicknotes"
			config.SecondaryLabel = "Store Topology"
			fmt.Println(introspection.TreeDiagram(buildStatusTree(state), config))
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// buildStatusTree maps the app state onto the node shape the diagram expects.
// Status values must be classes known to introspection.DefaultStyles().
func buildStatusTree(state quicknotes.AppState) statusNode {
	repoNode := func(name string, s any) statusNode {
		node := statusNode{Name: name, Status: "running", Metadata: map[string]string{"type": "process"}}
		if rs, ok := s.(core.RepositoryState); ok {
			node.Metadata["backend"] = rs.Backend
			node.Metadata["records"] = fmt.Sprintf("%d", rs.Records)
		}
		return node
	}

	watcherStatus := "suspended"
	if watcherActive(state.Store) {
		watcherStatus = "running"
	}

	return statusNode{
		Name:   "QuickNotes",
		Status: "running",
		Metadata: map[string]string{
			"type":    "container",
			"adapter": state.Adapter,
			"path":    state.Path,
		},
		Children: []statusNode{
			repoNode("Notes", state.Notes),
			repoNode("Categories", state.Categories),
			{
				Name:     "Watcher",
				Status:   watcherStatus,
				Metadata: map[string]string{"type": "goroutine", "store": state.StoreType},
			},
		},
	}
}

func watcherActive(store any) bool {
	switch s := store.(type) {
	case fs.StoreState:
		return s.WatcherActive
	case sqlite.DBState:
		return s.WatcherActive
	}
	return false
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusMermaid, "mermaid", false, "Output a Mermaid diagram")
}
