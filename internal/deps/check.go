package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/launch"
)

// Version represents a semantic version (major.minor.patch).
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	if v.Patch > 0 {
		return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}

// CheckResult contains the results of a single environment check.
type CheckResult struct {
	Name      string
	Installed bool
	Optional  bool
	Detail    string
	Version   *Version
	Error     error
}

// Checker runs environment checks. The fields default to the real
// environment and are replaced in tests. Programs are resolved by the same
// launcher the window manager uses.
type Checker struct {
	Getenv   func(string) string
	Launcher *launch.Launcher
	Output   func(path string, args ...string) ([]byte, error)
}

// NewChecker returns a Checker bound to the process environment.
func NewChecker() *Checker {
	return &Checker{
		Getenv:   os.Getenv,
		Launcher: launch.NewLauncher(nil),
		Output: func(path string, args ...string) ([]byte, error) {
			return exec.Command(path, args...).Output()
		},
	}
}

// CheckAll checks everything tilewm needs to run with cfg.
// Required: an X display, the terminal program
// Optional: the browser program
func (c *Checker) CheckAll(cfg *config.Config, display string) []CheckResult {
	terminal := c.CheckProgram("terminal", cfg.Apps.Terminal)
	browser := c.CheckProgram("browser", cfg.Apps.Browser)
	browser.Optional = true

	return []CheckResult{
		c.CheckDisplay(display),
		terminal,
		browser,
	}
}

// CheckDisplay checks that an X display is configured. An explicit display
// wins over $DISPLAY.
func (c *Checker) CheckDisplay(display string) CheckResult {
	result := CheckResult{Name: "display"}

	if display == "" {
		display = c.Getenv("DISPLAY")
	}
	if display == "" {
		result.Error = fmt.Errorf("DISPLAY is not set\n\nRun tilewm from an X session, e.g.:\n  startx $(which tilewm)\n  Xephyr :1 & tilewm --display :1")
		return result
	}

	result.Installed = true
	result.Detail = display
	return result
}

// CheckProgram checks that the program of a launch command is on PATH and
// records its version when it reports one.
func (c *Checker) CheckProgram(name, command string) CheckResult {
	result := CheckResult{Name: name}

	path, args, err := c.Launcher.Resolve(command)
	if errors.Is(err, launch.ErrNoCommand) {
		result.Error = fmt.Errorf("no %s configured\n\nSet apps.%s in the config file", name, name)
		return result
	}
	result.Detail = args[0]
	if err != nil {
		result.Error = fmt.Errorf("%w\n\nInstall it or set apps.%s in the config file", err, name)
		return result
	}
	result.Installed = true

	output, err := c.Output(path, "--version")
	if err == nil {
		result.Version, _ = parseVersion(string(output))
	}

	return result
}

var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// parseVersion finds the first dotted version number in output.
// Examples: "kitty 0.32.2 created by Kovid Goyal", "Mozilla Firefox 128.0"
func parseVersion(output string) (*Version, error) {
	matches := versionRe.FindStringSubmatch(output)
	if len(matches) < 3 {
		return nil, fmt.Errorf("could not parse version from: %s", output)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch, _ := strconv.Atoi(matches[3])

	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}, nil
}

// FormatResults formats check results for display.
func FormatResults(results []CheckResult) string {
	var sb strings.Builder

	for _, r := range results {
		switch {
		case r.Error != nil && r.Optional:
			sb.WriteString(fmt.Sprintf("! %s (optional): %v\n\n", r.Name, r.Error))
		case r.Error != nil:
			sb.WriteString(fmt.Sprintf("❌ %s: %v\n\n", r.Name, r.Error))
		default:
			line := fmt.Sprintf("✓ %s", r.Name)
			if r.Detail != "" {
				line += ": " + r.Detail
			}
			if r.Version != nil {
				line += fmt.Sprintf(" (%s)", r.Version)
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

// HasCriticalErrors returns true if any required check failed.
func HasCriticalErrors(results []CheckResult) bool {
	for _, r := range results {
		if r.Optional {
			continue
		}
		if r.Error != nil {
			return true
		}
	}
	return false
}
