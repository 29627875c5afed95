package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/gplaces/internal/common"
	"github.com/ternarybob/gplaces/pkg/places"
)

// app carries the state shared by every subcommand once the root has loaded
// config and built the client.
type app struct {
	configFiles []string
	rawParams   []string

	config *common.Config
	logger arbor.ILogger
	client *places.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "places",
		Short:         "places is a CLI for the Google Places web service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringArrayVarP(&a.configFiles, "config", "c", nil, "Configuration file path (repeatable, later files override earlier ones)")
	rootCmd.PersistentFlags().StringArrayVarP(&a.rawParams, "param", "p", nil, "Extra request parameter as key=value (repeatable)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newNearbyCmd(a),
		newTextCmd(a),
		newRadarCmd(a),
		newAutoCompleteCmd(a),
		newDetailsCmd(a),
		newPhotoCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
	)

	return rootCmd
}

// setup loads config (defaults -> files -> env), initializes the logger and
// builds the client. Subcommands that talk to the API use it as PreRunE.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config, err := common.LoadFromFiles(a.configFiles...)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	a.config = config
	a.logger = common.InitLogger(config)

	a.client, err = config.NewPlacesClient(a.logger)
	if err != nil {
		return fmt.Errorf("failed to create places client: %w", err)
	}

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("format", string(a.client.Format())).
		Strs("config_files", a.configFiles).
		Msg("Places client ready")
	return nil
}

func (a *app) params() (*places.Params, error) {
	return parseParams(a.rawParams)
}

// parseParams turns repeated key=value flags into ordered Params. A repeated
// key keeps its first position and takes the last value.
func parseParams(raw []string) (*places.Params, error) {
	params := places.NewParams()
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		params.Set(key, value)
	}
	return params, nil
}

// writeResponse prints the decoded payload: indented JSON for records and
// maps, the raw body for XML documents.
func writeResponse(w io.Writer, resp *places.Response) error {
	if resp.IsEmpty() {
		return fmt.Errorf("places api returned http status %d", resp.StatusCode)
	}

	var payload any
	switch resp.Kind {
	case places.KindRecord:
		payload = resp.Record
	case places.KindMap:
		payload = resp.Map
	case places.KindDocument:
		_, err := fmt.Fprintln(w, string(resp.Raw()))
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
