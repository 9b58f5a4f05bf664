package db

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Workspace groups the observed transactions of an engagement
type Workspace struct {
	BaseModel
	Code        string `gorm:"index" json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (w Workspace) String() string {
	return fmt.Sprintf("ID: %d, Code: %s, Title: %s", w.ID, w.Code, w.Title)
}

func (w Workspace) Pretty() string {
	return fmt.Sprintf("%s %s (%s)", color.CyanString("%d", w.ID), w.Title, w.Code)
}

func (w Workspace) TableHeaders() []string {
	return []string{"ID", "Code", "Title", "Description"}
}

func (w Workspace) TableRow() []string {
	return []string{fmt.Sprintf("%d", w.ID), w.Code, w.Title, w.Description}
}

// ListWorkspaces Lists workspaces
func (d *DatabaseConnection) ListWorkspaces() ([]*Workspace, int64, error) {
	var workspaces []*Workspace
	var count int64
	if err := d.db.Order("id asc").Find(&workspaces).Error; err != nil {
		return nil, 0, err
	}
	d.db.Model(&Workspace{}).Count(&count)
	return workspaces, count, nil
}

// CreateWorkspace saves a workspace to the database
func (d *DatabaseConnection) CreateWorkspace(workspace *Workspace) (*Workspace, error) {
	result := d.db.Create(workspace)
	if result.Error != nil {
		log.Error().Err(result.Error).Interface("workspace", workspace).Msg("Workspace creation failed")
	}
	return workspace, result.Error
}

// GetOrCreateWorkspace returns the workspace matching the code, creating it if needed
func (d *DatabaseConnection) GetOrCreateWorkspace(workspace *Workspace) (*Workspace, error) {
	var existing Workspace
	err := d.db.Where(&Workspace{Code: workspace.Code}).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return d.CreateWorkspace(workspace)
}

// CreateDefaultWorkspace makes sure the default workspace exists
func (d *DatabaseConnection) CreateDefaultWorkspace() (*Workspace, error) {
	return d.GetOrCreateWorkspace(&Workspace{
		Code:        "default",
		Title:       "Default",
		Description: "Default workspace",
	})
}

func (d *DatabaseConnection) GetWorkspaceByID(id uint) (*Workspace, error) {
	var workspace Workspace
	if err := d.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (d *DatabaseConnection) WorkspaceExists(id uint) (bool, error) {
	var count int64
	err := d.db.Model(&Workspace{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
