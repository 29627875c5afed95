package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/gplaces/pkg/places"
)

func newNearbyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nearby <lat,lng>",
		Short: "Search for places near a location",
		Long: `Nearby search. Ranking by prominence (default) requires --param radius=...;
--param rankby=distance requires one of keyword, name or type.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := places.ParseLatLng(args[0])
			if err != nil {
				return err
			}
			params, err := a.params()
			if err != nil {
				return err
			}
			resp, err := a.client.Search().Nearby(cmd.Context(), location, params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "text <query>",
		Short:   "Search for places matching a free-text query",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}
			resp, err := a.client.Search().Text(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
}

func newRadarCmd(a *app) *cobra.Command {
	var radius int

	cmd := &cobra.Command{
		Use:     "radar <lat,lng>",
		Short:   "Radar search around a location (requires keyword, name or type)",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := places.ParseLatLng(args[0])
			if err != nil {
				return err
			}
			params, err := a.params()
			if err != nil {
				return err
			}
			resp, err := a.client.Search().Radar(cmd.Context(), location, radius, params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().IntVar(&radius, "radius", 1000, "Search radius in meters")

	return cmd
}

func newAutoCompleteCmd(a *app) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:     "autocomplete <input>",
		Short:   "Return place predictions for partial input",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}
			resp, err := a.client.Search().AutoComplete(cmd.Context(), args[0], language, params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "Result language (default \"en\")")

	return cmd
}
