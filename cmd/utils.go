package cmd

import (
	"github.com/pyneda/wsdlwizard/db"
	"github.com/rs/zerolog/log"
)

// ensureWorkspace resolves the workspace to use. Zero selects the default workspace, creating it if needed.
func ensureWorkspace(id uint) (uint, bool) {
	if id == 0 {
		workspace, err := db.Connection().CreateDefaultWorkspace()
		if err != nil {
			log.Error().Err(err).Msg("Could not create default workspace")
			return 0, false
		}
		return workspace.ID, true
	}

	exists, err := db.Connection().WorkspaceExists(id)
	if err != nil {
		log.Error().Err(err).Msg("Could not check workspace")
		return 0, false
	}
	if !exists {
		log.Error().Uint("id", id).Msg("Workspace does not exist")
		workspaces, count, _ := db.Connection().ListWorkspaces()
		if count == 0 {
			log.Info().Msg("No workspaces found.")
		} else {
			log.Info().Msg("Available workspaces:")
			for _, workspace := range workspaces {
				log.Info().Msgf("ID: %d, Code: %s, Title: %s", workspace.ID, workspace.Code, workspace.Title)
			}
		}
		return 0, false
	}
	return id, true
}
