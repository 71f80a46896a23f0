package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swisscx/customer-insights/internal/config"
	"github.com/swisscx/customer-insights/internal/dataset"
	"github.com/swisscx/customer-insights/internal/generator"
	"github.com/swisscx/customer-insights/internal/notebook"
)

// execute runs the root command. Flag values persist between calls, so every
// test passes the flags it relies on explicitly.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func generateFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "customers.csv")
	_, err := execute(t, "generate", "--records", "60", "--seed", "5", "--year", "2023", "--out", path)
	require.NoError(t, err)
	return path
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "customers.csv")

	out, err := execute(t, "generate", "--records", "60", "--seed", "5", "--year", "2023", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 60 customers (seed 5, year 2023)")
	assert.Contains(t, out, generator.Fingerprint(60, 5, 2023))

	ds, err := dataset.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60, ds.Len())
}

func TestGenerateCommand_Deterministic(t *testing.T) {
	a := generateFile(t, t.TempDir())
	b := generateFile(t, t.TempDir())

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCommand_InvalidRecords(t *testing.T) {
	_, err := execute(t, "generate", "--records", "0", "--seed", "5", "--year", "2023", "--out", filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrInvalidArgument)
}

func TestValidateCommand_JSON(t *testing.T) {
	path := generateFile(t, t.TempDir())

	out, err := execute(t, "validate", "--input", path, "--json", "--strict")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.EqualValues(t, 60, report["rows"])
}

func TestAnalyzeCommand_Console(t *testing.T) {
	dir := t.TempDir()
	path := generateFile(t, dir)

	out, err := execute(t, "analyze", "--input", path, "--format", "text", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "CUSTOMER BEHAVIOUR ANALYSIS - SWITZERLAND")
	assert.Contains(t, out, "Total customers:      60")
	assert.Contains(t, out, "Report written to")
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := generateFile(t, dir)

	_, err := execute(t, "analyze", "--input", path, "--format", "xlsx", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Try one of:")
}

func TestExampleConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := execute(t, "example-config", "--out", path)
	require.NoError(t, err)

	cfg, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Output.Charts)
}

func TestNotebookCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.ipynb")
	doc := `{
 "cells": [
  {"cell_type": "code", "execution_count": 3, "metadata": {}, "outputs": [{"output_type": "stream", "text": ["hi"]}], "source": ["x = np.random.etreta(2, 5)\n"]},
  {"cell_type": "markdown", "metadata": {}, "source": ["# np.random.etreta"]}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, err := execute(t, "notebook", "clear", path, "--out", "")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared 1 of 2 cells")

	fixed := filepath.Join(dir, "fixed.ipynb")
	out, err = execute(t, "notebook", "fix", path, "--out", fixed)
	require.NoError(t, err)
	assert.Contains(t, out, "fixed 1 of 2 cells")

	nb, err := notebook.Load(fixed)
	require.NoError(t, err)
	assert.Equal(t, []string{"x = np.random.beta(2, 5)\n"}, nb.Cells[0].Source)
	assert.Equal(t, []string{"# np.random.etreta"}, nb.Cells[1].Source)
}

func TestUnknownLogMode(t *testing.T) {
	_, err := execute(t, "example-config", "--log-mode", "loud", "--out", filepath.Join(t.TempDir(), "c.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log mode")

	_, err = execute(t, "example-config", "--log-mode", "development", "--out", filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)
}
