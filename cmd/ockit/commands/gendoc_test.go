package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestGenDocCommand_WritesMarkdown(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()

	output := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"gen-doc", "--dir", dir})
		if err := rootCmd.Execute(); err != nil {
			panic("gen-doc failed: " + err.Error())
		}
	})

	if !strings.Contains(output, "Documentation generated") {
		t.Errorf("output = %q, want generation notice", output)
	}

	for _, file := range []string{"ockit.md", "ockit_catalog.md", "ockit_install.md"} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("%s not generated: %v", file, err)
		}
	}
}

func TestGenDocCommand_RequiresDir(t *testing.T) {
	t.Cleanup(viper.Reset)

	// Flag values persist between executions.
	if err := genDocCmd.Flags().Set("dir", ""); err != nil {
		t.Fatalf("resetting flag: %v", err)
	}

	rootCmd.SetArgs([]string{"gen-doc"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("gen-doc without --dir should fail")
	}
	if !strings.Contains(err.Error(), "output directory") {
		t.Errorf("error = %q", err.Error())
	}
}
