// Package cli defines the btbridge command tree, adapted from the
// teacher's kong-based CLI: global logging flags plus a Bridge command
// that brings up the Bluetooth host and drives the tick loop, and a
// Config command that scaffolds a mapping-config template file.
package cli

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/btwired/bridge/internal/bthost"
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/configpaths"
	"github.com/btwired/bridge/internal/decode/ps3"
	"github.com/btwired/bridge/internal/feedback"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/hci"
	"github.com/btwired/bridge/internal/hci/socket"
	"github.com/btwired/bridge/internal/log"
	"github.com/btwired/bridge/internal/mapping"
	"github.com/btwired/bridge/internal/wired"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// LogOpts are the global logging flags shared by every command.
type LogOpts struct {
	Level   string `help:"Log level (trace|debug|info|warn|error)" default:"info" enum:"trace,debug,info,warn,error"`
	File    string `help:"Write logs to this file in addition to the console"`
	RawFile string `name:"raw-file" help:"Write every HCI/L2CAP frame, hex-dumped, to this file"`
}

// CLI is the top-level command tree bound by kong in cmd/btbridge.
type CLI struct {
	Log    LogOpts      `embed:"" prefix:"log."`
	Bridge BridgeCmd    `cmd:"" default:"withargs" help:"Bring up the Bluetooth host and bridge paired gamepads to wired console ports"`
	Config ConfigCmd    `cmd:"" help:"Configuration file management"`
}

// BridgeCmd is the main run command: brings the HCI host up, accepts
// Bluetooth HID device connections and drives wired encoders from the
// generic_ctrl state each decoder produces (spec §4.6/§9).
type BridgeCmd struct {
	Device     int           `help:"HCI device index to bind (-1 picks the first available)" default:"-1"`
	LocalAddr  string        `help:"Local Bluetooth address, colon-hex (e.g. AA:BB:CC:DD:EE:FF)" default:"00:00:00:00:00:00"`
	ConfigFile string        `help:"Mapping config file path (binary spec §6 layout; absent means defaults)" type:"path"`
	System     string        `help:"Wired console every output port targets" enum:"n64,dreamcast,psx,ps2,saturn,gamecube,nes,snes,pce,3do,jaguar,sea,ogx360" default:"n64"`
	TickPeriod time.Duration `help:"Host tick period" default:"10ms"`
}

var systemByName = map[string]wired.System{
	"n64":       wired.SystemN64,
	"dreamcast": wired.SystemDreamcast,
	"psx":       wired.SystemPSX,
	"ps2":       wired.SystemPS2,
	"saturn":    wired.SystemSaturn,
	"gamecube":  wired.SystemGameCube,
	"nes":       wired.SystemNES,
	"snes":      wired.SystemSNES,
	"pce":       wired.SystemPCE,
	"3do":       wired.System3DO,
	"jaguar":    wired.SystemJaguar,
	"sea":       wired.SystemSea,
	"ogx360":    wired.SystemOgx360,
}

// Run is called by kong when no subcommand (or "bridge") is given. It
// brings up the local controller's bring-up sequence and then blocks,
// ticking the host until interrupted. The raw HCI transport is optional:
// without root/hardware access the host still runs against its in-memory
// ring, exercising every state machine above the wire.
func (b *BridgeCmd) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, err := parseBDAddr(b.LocalAddr)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}

	sys, ok := systemByName[b.System]
	if !ok {
		return fmt.Errorf("bridge: unknown system %q", b.System)
	}
	enc := wired.For(sys)
	if enc == nil {
		return fmt.Errorf("bridge: no wired encoder registered for %q", b.System)
	}
	// A PS3/Sixaxis pad feeds DualShock2 pressure-sensitive D-pad/face
	// button bytes only when the wired side can use them (spec §8
	// scenario B); every other target keeps the plain 4-axis decode.
	ps3.SetPressureMode(sys == wired.SystemPSX || sys == wired.SystemPS2)

	cfg, err := loadConfig(b.ConfigFile)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}

	host := bthost.NewHost(addr)
	logger.Info("starting bluetooth host bring-up", "local_addr", b.LocalAddr, "device", b.Device, "system", b.System)

	sock, sockErr := socket.Open(b.Device)
	if sockErr != nil {
		logger.Warn("raw HCI socket unavailable, running host against in-memory ring only", "error", sockErr)
	} else {
		defer sock.Close()
	}

	router := feedback.NewRouter(host.Pool)
	ports := make(map[int]*outputPort)
	portFor := func(port int) *outputPort {
		p, ok := ports[port]
		if !ok {
			p = &outputPort{}
			enc.InitBuffer(cfg.Out[port].DevMode, &p.state)
			enc.MetaInit(cfg.Out[port].DevMode, &p.ctrl)
			ports[port] = p
		}
		return p
	}

	ticker := time.NewTicker(b.TickPeriod)
	defer ticker.Stop()
	// pauseUntil holds the ring back after a {0xFF, delay_ms} marker.
	var pauseUntil time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case now := <-ticker.C:
			host.Tick(now)
			if !now.Before(pauseUntil) {
				if frame, ok := host.Ring.Pop(); ok {
					if d, isDelay := hci.IsDelaySentinel(frame); isDelay {
						pauseUntil = now.Add(time.Duration(d.DelayMS) * time.Millisecond)
					} else {
						rawLogger.Log(true, frame)
						if sock != nil {
							if _, err := sock.Write(frame); err != nil {
								logger.Error("hci socket write failed", "error", err)
							}
						}
					}
				}
			}
			if host.Ready() {
				b.driveOutputs(host, enc, cfg, portFor, router, logger)
			}
		}
	}
}

// outputPort pairs one wired port's encode-side buffer with the mapped
// generic.Ctrl the mapping engine writes destination bits into; both are
// initialised once, the first time the port is used, via
// InitBuffer/MetaInit.
type outputPort struct {
	state wired.PortState
	ctrl  generic.Ctrl
}

// driveOutputs runs every occupying device's generic.Ctrl sample through
// its mapping rules, then encodes every output port's mapped state to
// its wire buffer, one tick after bring-up finishes (spec
// §4.5/§4.8/§9's per-cycle pipeline). Every port is pre-initialised
// before any device's rules run because a rule's destination id can
// target a port other than the one its source device occupies (spec
// §3's dst_id is independent of the source's own wired port).
func (b *BridgeCmd) driveOutputs(host *bthost.Host, enc wired.Encoder, cfg *config.Config, portFor func(int) *outputPort, router *feedback.Router, logger *slog.Logger) {
	outs := make([]*generic.Ctrl, config.MaxOutCfg)
	for i := 0; i < config.MaxOutCfg; i++ {
		outs[i] = &portFor(i).ctrl
	}
	engine := &mapping.Engine{Outputs: outs}

	for slot := 0; slot < btdev.MaxDevices; slot++ {
		dev := host.Pool.Get(slot)
		if dev == nil {
			continue
		}
		devLogger := log.WithDevice(logger, dev.Slot, formatBDAddr(dev.Addr))
		devLogger.Log(context.Background(), log.LevelTrace, "mapping source device", "buttons", dev.Ctrl.Btns[generic.PlanePad].Value)
		engine.Run(&dev.Ctrl, &cfg.In[dev.Slot%config.MaxInCfg])
		dev.Ctrl.Clear()
	}

	for i := 0; i < config.MaxOutCfg; i++ {
		out := portFor(i)
		portLogger := log.WithPort(logger, i, b.System)
		enc.FromGeneric(cfg.Out[i].DevMode, &out.ctrl, &out.state, cfg)
		if fb := feedback.Pump(enc, i, out.state.Output, router); fb != nil {
			portLogger.Debug("feedback routed", "bytes", len(fb))
		}
		out.ctrl.Clear()
	}
}

// loadConfig reads the binary spec §6 layout from path, or returns the
// all-defaults config when path is empty or the file is missing. A magic
// mismatch is not an error either: the all-defaults config is returned
// in its place, and the file itself is left unchanged.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[0:4]) != config.Magic {
		return cfg, nil
	}
	if err := cfg.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// formatBDAddr renders a Bluetooth device address as colon-separated hex,
// the inverse of parseBDAddr, for attaching to log records.
func formatBDAddr(addr [6]byte) string {
	parts := make([]string, len(addr))
	for i, b := range addr {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

func parseBDAddr(s string) ([6]byte, error) {
	var addr [6]byte
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return addr, fmt.Errorf("bad bluetooth address %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return addr, fmt.Errorf("bad bluetooth address %q: %w", s, err)
		}
		addr[i] = byte(v)
	}
	return addr, nil
}

// ConfigCmd groups config-related subcommands.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Generate a mapping-config template"`
}

// ConfigInitCmd scaffolds a config.Config-shaped template file by
// reflecting over BridgeCmd's flags, the same dynamic-template approach
// the teacher uses for its own server/proxy config commands.
type ConfigInitCmd struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to the platform config dir)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInitCmd) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := buildMapFromStruct(reflect.TypeOf(BridgeCmd{}))

	dest := c.Output
	if dest == "" {
		var err error
		dest, err = configpaths.DefaultConfigPath(format)
		if err != nil {
			return err
		}
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}

func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			sub := buildMapFromStruct(f.Type)
			for k, v := range sub {
				out[k] = v
			}
			continue
		}
		key := lowerCamel(f.Name)
		def := f.Tag.Get("default")
		if val := defaultValueForField(f.Type, def); val != nil {
			out[key] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
