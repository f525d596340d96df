// Command rangeatlas is the CLI tool for RangeAtlas.
// It parses provider address-range documents and answers containment lookups
// against the resulting model.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/netip"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/RangeAtlas/core/atlas"
	"github.com/FocuswithJustin/RangeAtlas/core/rangexml"
	"github.com/FocuswithJustin/RangeAtlas/core/xmlutil"
	"github.com/FocuswithJustin/RangeAtlas/internal/logging"
	"github.com/FocuswithJustin/RangeAtlas/internal/sources"
)

const version = "0.1.0"

// CLI defines the command-line interface for rangeatlas.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Parse   ParseCmd   `cmd:"" help:"Parse one document and print the model"`
	List    ListCmd    `cmd:"" help:"Parse every document in a directory and summarize"`
	Lookup  LookupCmd  `cmd:"" help:"Find which group and region contain an address"`
	Fmt     FmtCmd     `cmd:"" help:"Pretty-print a document"`
	Query   QueryCmd   `cmd:"" help:"Run an XPath expression against a document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ParseCmd parses a single document.
type ParseCmd struct {
	Path string `arg:"" help:"Path to document" type:"existingfile"`
	Emit string `name:"emit" default:"json" enum:"json,xml" help:"Output format"`
}

// Run executes the parse command.
func (c *ParseCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	group, err := rangexml.ParseDocument(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if group == nil {
		return fmt.Errorf("%s: document contains no group", c.Path)
	}

	logging.DocumentParsed(c.Path, group.Name, len(group.Regions), group.RangeCount(),
		"digest", sources.Digest(data))

	if c.Emit == "xml" {
		return rangexml.WriteDocument(os.Stdout, group)
	}
	out, err := json.MarshalIndent(group, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// ListCmd parses every document found in a directory.
type ListCmd struct {
	Dir    string `arg:"" help:"Directory containing documents" type:"existingdir"`
	Prefix string `name:"prefix" help:"Only consider sources whose name starts with this prefix"`
}

// Run executes the list command.
func (c *ListCmd) Run() error {
	ctx := logging.WithRunID(context.Background(), uuid.New().String())
	log := logging.LoggerFromContext(ctx)

	parsed := 0
	for group, err := range rangexml.ParseAll(sources.FromDir(c.Dir), c.Prefix) {
		if err != nil {
			return err
		}
		parsed++
		fmt.Printf("%-30s regions=%-3d ranges=%d\n", displayName(group), len(group.Regions), group.RangeCount())
	}

	log.Info("list_complete", "dir", c.Dir, "groups", parsed)
	if parsed == 0 {
		fmt.Println("no documents found")
	}
	return nil
}

// LookupCmd reports which group and region contain an address.
type LookupCmd struct {
	Addr   string `arg:"" help:"IP address to look up"`
	Dir    string `arg:"" help:"Directory containing documents" type:"existingdir"`
	Prefix string `name:"prefix" help:"Only consider sources whose name starts with this prefix"`
}

// Run executes the lookup command. It stops at the first containing range,
// so later sources are never parsed.
func (c *LookupCmd) Run() error {
	addr, err := netip.ParseAddr(c.Addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", c.Addr, err)
	}

	ctx := logging.WithRunID(context.Background(), uuid.New().String())
	log := logging.LoggerFromContext(ctx)

	for group, err := range rangexml.ParseAll(sources.FromDir(c.Dir), c.Prefix) {
		if err != nil {
			return err
		}
		for _, region := range group.Regions {
			for _, rng := range region.Ranges {
				if rng.Contains(addr) {
					fmt.Printf("%s: %s / %s (%s)\n", addr, displayName(group), region.Name, rng)
					log.Info("lookup_hit", "addr", addr.String(), "group", group.Name, "region", region.Name)
					return nil
				}
			}
		}
	}

	return fmt.Errorf("%s is not in any known range", addr)
}

// FmtCmd pretty-prints a document.
type FmtCmd struct {
	Path   string `arg:"" help:"Path to document" type:"existingfile"`
	Indent string `name:"indent" default:"  " help:"Indentation string"`
}

// Run executes the fmt command.
func (c *FmtCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	out, err := xmlutil.Format(data, c.Indent)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}

// QueryCmd runs an XPath expression against a document.
type QueryCmd struct {
	Path string `arg:"" help:"Path to document" type:"existingfile"`
	Expr string `arg:"" help:"XPath expression"`
}

// Run executes the query command.
func (c *QueryCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	matches, err := xmlutil.Query(data, c.Expr)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Println(m)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run() error {
	fmt.Printf("rangeatlas %s\n", version)
	return nil
}

func displayName(g *atlas.Group) string {
	if g.Name == "" {
		return "(unnamed)"
	}
	return g.Name
}

func initLogging() {
	level := map[string]logging.Level{
		"debug": logging.LevelDebug,
		"info":  logging.LevelInfo,
		"warn":  logging.LevelWarn,
		"error": logging.LevelError,
	}[CLI.LogLevel]
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rangeatlas"),
		kong.Description("RangeAtlas - provider address-range document tools"),
		kong.UsageOnError(),
	)
	initLogging()
	ctx.FatalIfErrorf(ctx.Run())
}
