// Command btbridge bridges Bluetooth HID gamepads, keyboards and mice to
// wired console controller ports.
package main

import (
	"os"
	"strings"

	"github.com/btwired/bridge/internal/cli"
	"github.com/btwired/bridge/internal/configpaths"
	"github.com/btwired/bridge/internal/log"

	_ "github.com/btwired/bridge/internal/hidprofile/generichid"
	_ "github.com/btwired/bridge/internal/hidprofile/ps3"
	_ "github.com/btwired/bridge/internal/hidprofile/ps4"
	_ "github.com/btwired/bridge/internal/hidprofile/sw"
	_ "github.com/btwired/bridge/internal/hidprofile/wii"
	_ "github.com/btwired/bridge/internal/hidprofile/xbox"

	_ "github.com/btwired/bridge/internal/wired/dreamcast"
	_ "github.com/btwired/bridge/internal/wired/gamecube"
	_ "github.com/btwired/bridge/internal/wired/jaguar"
	_ "github.com/btwired/bridge/internal/wired/n64"
	_ "github.com/btwired/bridge/internal/wired/nes"
	_ "github.com/btwired/bridge/internal/wired/ogx360"
	_ "github.com/btwired/bridge/internal/wired/pce"
	_ "github.com/btwired/bridge/internal/wired/psx"
	_ "github.com/btwired/bridge/internal/wired/saturn"
	_ "github.com/btwired/bridge/internal/wired/sea"
	_ "github.com/btwired/bridge/internal/wired/snes"
	_ "github.com/btwired/bridge/internal/wired/threedo"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("btbridge"),
		kong.Description("Bluetooth-to-wired-controller bridge"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(root.Log.Level, root.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var rawLogger log.RawLogger
	if root.Log.RawFile != "" {
		f, err := os.OpenFile(root.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", root.Log.RawFile, "error", err)
			rawLogger = log.NewRaw(nil)
		} else {
			rawLogger = log.NewRaw(f)
			closeFiles = append(closeFiles, f)
		}
	} else if root.Log.Level == "trace" {
		rawLogger = log.NewRaw(os.Stdout)
	} else {
		rawLogger = log.NewRaw(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("BTBRIDGE_CONFIG"); v != "" {
		return v
	}
	return ""
}
