package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ternarybob/gplaces/pkg/places"
)

func newDetailsCmd(a *app) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:     "details <place-id>",
		Short:   "Fetch details for a place",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}
			resp, err := a.client.Places().Details(cmd.Context(), args[0], language, params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "Result language (default \"en\")")

	return cmd
}

func newPhotoCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "photo <photo-reference>",
		Short:   "Download a place photo (requires --param maxwidth or maxheight)",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}
			data, err := a.client.Places().Photo(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write photo to %s: %w", out, err)
			}
			a.logger.Info().Str("path", out).Int("bytes", len(data)).Msg("Photo saved")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		lat, lng float64
		name     string
		types    []string
		accuracy int
		language string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a place",
		Args:    cobra.NoArgs,
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}
			location := places.LatLng{Lat: lat, Lng: lng}
			resp, err := a.client.Places().Add(cmd.Context(), location, name, types, accuracy, language, params)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().StringVar(&name, "name", "", "Place name (max 255 characters)")
	cmd.Flags().StringArrayVar(&types, "type", nil, "Place type (repeatable)")
	cmd.Flags().IntVar(&accuracy, "accuracy", 50, "Location accuracy in meters")
	cmd.Flags().StringVar(&language, "language", "", "Language of the name (default \"en\")")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <reference>",
		Short:   "Delete a place added by this application",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Places().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
}
