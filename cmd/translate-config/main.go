package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	configi18n "github.com/goliatone/go-config-i18n"
	"github.com/goliatone/go-config-i18n/internal/commands/i18ncmd"
)

const envPrefix = "I18N_"

var moduleBuilder = func(cfg configi18n.Config) (*configi18n.Module, error) {
	return configi18n.New(cfg)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("translate-config: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("translate-config", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "Path to the JSON Schema describing the config object")
	dataPath := fs.String("data", "", "Path to the config data document (.json or .toml)")
	name := fs.String("name", "", "Config object name used to scope stored translations")
	source := fs.String("source", "", "Source language (defaults to the base language)")
	target := fs.String("target", "", "Target language")
	base := fs.String("base", "", "Base language translations are allowed from (overrides I18N_TRANSLATION_BASE_LANGUAGE)")
	messages := fs.String("messages", "", "Directory of go-i18n message files (overrides I18N_TRANSLATION_MESSAGES_DIR)")
	apply := fs.Bool("apply", false, "Print the translated document instead of the overlay")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaPath == "" || *dataPath == "" || *target == "" {
		return fmt.Errorf("-schema, -data and -target are required")
	}

	cfg, err := configi18n.FromEnv(configi18n.DefaultConfig(), envPrefix)
	if err != nil {
		return err
	}
	if *base != "" {
		cfg.Translation.BaseLanguage = *base
	}
	if *messages != "" {
		cfg.Translation.MessagesDir = *messages
	}
	if *source == "" {
		*source = cfg.Translation.BaseLanguage
	}

	schema, err := readDocument(*schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	data, err := readDocument(*dataPath)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(*dataPath), filepath.Ext(*dataPath))
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()
	if err := module.MigrateUp(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := module.Start(ctx); err != nil {
		return fmt.Errorf("start module: %w", err)
	}

	handlers := module.Commands()
	if handlers == nil || handlers.TranslateConfig == nil {
		return fmt.Errorf("translate command not configured")
	}
	result := &i18ncmd.TranslateConfigResult{}
	if err := handlers.TranslateConfig.Execute(ctx, i18ncmd.TranslateConfigCommand{
		Name:   *name,
		Schema: schema,
		Data:   data,
		Source: *source,
		Target: *target,
		Result: result,
	}); err != nil {
		return fmt.Errorf("execute translate command: %w", err)
	}

	payload := result.Overlay
	if *apply {
		payload = result.Translated
	}
	if payload == nil {
		payload = map[string]any{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func readDocument(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(raw, &doc)
	default:
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
