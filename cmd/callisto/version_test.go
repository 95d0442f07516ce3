package main

import "testing"

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestExportCommandFlags(t *testing.T) {
	for _, flag := range []string{"format", "broker", "output", "store", "pretty", "watch"} {
		if exportCmd.Flags().Lookup(flag) == nil {
			t.Errorf("export command missing flag --%s", flag)
		}
	}
}
