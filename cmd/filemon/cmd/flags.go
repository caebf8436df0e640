// Copyright © 2019 One Concern

package cmd

import (
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/spf13/cobra"
)

type paramsT struct {
	root struct {
		repoDir  string
		logLevel string
	}
	session struct {
		branch string
		name   string
		email  string
	}
	commit struct {
		message string
		version string
	}
	checkout struct {
		destination string
	}
}

var params = paramsT{}

func addRepoDirFlag(cmd *cobra.Command) string {
	repo := "repo"
	cmd.PersistentFlags().StringVar(&params.root.repoDir, repo, ".filemon",
		"The path to the repository directory")
	return repo
}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&params.root.logLevel, loglevel, "",
		"The log level for this command (info, debug or none)")
	return loglevel
}

func addBranchFlag(cmd *cobra.Command) string {
	branch := "branch"
	cmd.Flags().StringVar(&params.session.branch, branch, "",
		"The branch to operate on, overriding the session branch")
	return branch
}

func addMessageFlag(cmd *cobra.Command) string {
	message := "message"
	cmd.Flags().StringVarP(&params.commit.message, message, "m", "",
		"A message describing this version")
	return message
}

func addVersionFlag(cmd *cobra.Command) string {
	version := "version"
	cmd.Flags().StringVar(&params.commit.version, version, "",
		"An explicit version number <major>.<minor>, sorting after the current head")
	return version
}

func addDestinationFlag(cmd *cobra.Command) string {
	destination := "destination"
	cmd.Flags().StringVar(&params.checkout.destination, destination, "",
		"Where to write the checked out content. Defaults to the tracked path itself")
	return destination
}

func addContributorEmail(cmd *cobra.Command) string {
	email := "email"
	cmd.Flags().StringVar(&params.session.email, email, "",
		"The email of the contributor")
	return email
}

// versionFlag parses an optional version string, nil when unset
func versionFlag(s string) (*model.Version, error) {
	if s == "" {
		return nil, nil
	}
	v, err := model.ParseVersion(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
