package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachetag/cachetag/internal/config"
	"github.com/cachetag/cachetag/pkg/fingerprint"
)

var (
	// Version information (set by build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	verbose bool

	log = logrus.New()
)

// rootCmd is the whole tool: compute the cache tag for one build and print it.
var rootCmd = &cobra.Command{
	Use:   "cachetag",
	Short: "Compute a deterministic cache tag for a container image build",
	Long: `Cachetag computes a short deterministic fingerprint for a container image
build, for CI pipelines that want to reuse a previously built layer instead
of rebuilding.

The tag covers the Dockerfile bytes, the target stage, the architecture, the
build arguments (bare KEY entries resolve from the environment), an optional
opaque extra-arguments blob, and the content of any files matched by the
declared cache-on patterns. A pattern may carry a jq expression
(deps.json#.version) to hash an extracted JSON value instead of the whole
file.

Configuration comes from PLUGIN_* environment variables in the usual CI
plugin convention; flags override them. On success the tag is the only line
written to stdout.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runComputeTag,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Cachetag version: %s\n", version)
		fmt.Printf("Git commit: %s\n", commit)
		fmt.Printf("Build time: %s\n", buildTime)
	},
}

func init() {
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")

	rootCmd.Flags().StringP("dockerfile", "f", "", "path of the Dockerfile to fingerprint")
	rootCmd.Flags().String("target", "", "build stage the tag is computed for")
	rootCmd.Flags().String("arch", "", "architecture string mixed into the tag")
	rootCmd.Flags().StringSlice("build-arg", nil, "build-time variable, KEY or KEY=VALUE")
	rootCmd.Flags().String("additional-args", "", "opaque extra-arguments blob mixed into the tag")
	rootCmd.Flags().StringSlice("cache-on", nil, "dependency pattern, <glob> or <glob>#<jq-expr>")
	rootCmd.Flags().String("context", "", "directory dependency patterns are resolved against")

	rootCmd.AddCommand(versionCmd)
}

// runComputeTag handles the one operation this tool performs.
func runComputeTag(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	spec, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	applyFlagOverrides(cmd, &spec)

	log.WithFields(logrus.Fields{
		"dockerfile": spec.Dockerfile,
		"target":     spec.Target,
		"arch":       spec.Architecture,
		"build_args": len(spec.BuildArgs),
		"cache_on":   spec.CacheOn,
	}).Debug("computing cache tag")

	tag, err := fingerprint.New().ComputeTag(spec, config.Snapshot())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tag)
	return nil
}

// applyFlagOverrides lets explicit flags win over PLUGIN_* environment
// variables, field by field.
func applyFlagOverrides(cmd *cobra.Command, spec *fingerprint.BuildSpec) {
	flags := cmd.Flags()
	if flags.Changed("dockerfile") {
		spec.Dockerfile, _ = flags.GetString("dockerfile")
	}
	if flags.Changed("target") {
		spec.Target, _ = flags.GetString("target")
	}
	if flags.Changed("arch") {
		spec.Architecture, _ = flags.GetString("arch")
	}
	if flags.Changed("build-arg") {
		spec.BuildArgs, _ = flags.GetStringSlice("build-arg")
	}
	if flags.Changed("additional-args") {
		spec.AdditionalArgs, _ = flags.GetString("additional-args")
	}
	if flags.Changed("cache-on") {
		spec.CacheOn, _ = flags.GetStringSlice("cache-on")
	}
	if flags.Changed("context") {
		spec.ContextDir, _ = flags.GetString("context")
	}
}

// exitCode maps the error taxonomy onto the process exit status: bad
// configuration exits 2, a dependency that could not be hashed exits 1.
func exitCode(err error) int {
	var ferr *fingerprint.Error
	if errors.As(err, &ferr) {
		return ferr.ExitCode()
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
