package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"sigs.k8s.io/yaml"
)

// resolveExportDir returns the export directory, creating it on first
// use. An empty configured directory falls back to ~/.config/lvm-browser/exports.
func resolveExportDir(configured string) (string, error) {
	exportDir := configured
	if exportDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			exportDir = "."
		} else {
			exportDir = filepath.Join(homeDir, ".config", "lvm-browser", "exports")
		}
	}

	if _, err := os.Stat(exportDir); os.IsNotExist(err) {
		if err := os.MkdirAll(exportDir, 0755); err != nil {
			return "", fmt.Errorf("cannot create export directory %s: %w", exportDir, err)
		}
	}
	return exportDir, nil
}

// exportSnapshot writes the current topology snapshot as YAML.
func (m *Model) exportSnapshot() tea.Cmd {
	topo := m.topo
	if topo == nil {
		return nil
	}
	return func() tea.Msg {
		exportDir, err := resolveExportDir(m.exportDir)
		if err != nil {
			return statusLineMsg(m.TF("status.export_failed", map[string]interface{}{"Error": err.Error()}))
		}

		data, err := yaml.Marshal(topo)
		if err != nil {
			return statusLineMsg(m.TF("status.export_failed", map[string]interface{}{"Error": err.Error()}))
		}

		filename := fmt.Sprintf("topology-%s.yaml", time.Now().Format("20060102-150405"))
		fullPath := filepath.Join(exportDir, filename)
		if err := os.WriteFile(fullPath, data, 0644); err != nil {
			return statusLineMsg(m.TF("status.export_failed", map[string]interface{}{"Error": err.Error()}))
		}

		return statusLineMsg(m.TF("status.exported", map[string]interface{}{"Path": fullPath}))
	}
}
