package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// WsdlDiscovery stores the outcome of one discovery run against a target
type WsdlDiscovery struct {
	BaseUUIDModel
	WorkspaceID     *uint          `gorm:"index" json:"workspace_id"`
	Workspace       Workspace      `json:"-" yaml:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Target          string         `gorm:"index" json:"target"`
	Status          string         `gorm:"index" json:"status"`
	Strategy        string         `json:"strategy"`
	Found           datatypes.JSON `json:"found"`
	Confirmed       datatypes.JSON `json:"confirmed"`
	CandidatesCount int            `json:"candidates_count"`
	ProbedCount     int            `json:"probed_count"`
	FailedCount     int            `json:"failed_count"`
	Errors          datatypes.JSON `json:"errors"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
}

func encodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		log.Error().Err(err).Msg("Error encoding string list")
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func decodeStringList(raw datatypes.JSON) []string {
	items := []string{}
	if len(raw) == 0 {
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("Error decoding string list")
	}
	return items
}

func (w *WsdlDiscovery) SetFound(urls []string) {
	w.Found = encodeStringList(urls)
}

func (w *WsdlDiscovery) SetConfirmed(urls []string) {
	w.Confirmed = encodeStringList(urls)
}

func (w *WsdlDiscovery) SetErrors(errs []string) {
	w.Errors = encodeStringList(errs)
}

func (w WsdlDiscovery) FoundURLs() []string {
	return decodeStringList(w.Found)
}

func (w WsdlDiscovery) ConfirmedURLs() []string {
	return decodeStringList(w.Confirmed)
}

func (w WsdlDiscovery) String() string {
	return fmt.Sprintf("ID: %s, Target: %s, Status: %s, Found: %d, Confirmed: %d", w.ID, w.Target, w.Status, len(w.FoundURLs()), len(w.ConfirmedURLs()))
}

func (w WsdlDiscovery) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [%s]\n", color.CyanString(w.ID.String()), w.Target, w.Status)
	for _, u := range w.FoundURLs() {
		fmt.Fprintf(&b, "  found     %s\n", u)
	}
	for _, u := range w.ConfirmedURLs() {
		fmt.Fprintf(&b, "  confirmed %s\n", color.GreenString(u))
	}
	return b.String()
}

func (w WsdlDiscovery) TableHeaders() []string {
	return []string{"ID", "Workspace", "Target", "Status", "Found", "Confirmed", "Candidates", "Finished"}
}

func (w WsdlDiscovery) TableRow() []string {
	return []string{
		w.ID.String(),
		formatUintPointer(w.WorkspaceID),
		w.Target,
		w.Status,
		fmt.Sprintf("%d", len(w.FoundURLs())),
		fmt.Sprintf("%d", len(w.ConfirmedURLs())),
		fmt.Sprintf("%d", w.CandidatesCount),
		w.FinishedAt.Format(time.RFC3339),
	}
}

// WsdlDiscoveryFilter represents available discovery report filters
type WsdlDiscoveryFilter struct {
	WorkspaceID uint
	Target      string
	Pagination  Pagination
}

func (d *DatabaseConnection) CreateWsdlDiscovery(discovery *WsdlDiscovery) (*WsdlDiscovery, error) {
	result := d.db.Create(discovery)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("target", discovery.Target).Msg("Failed to create wsdl discovery record")
	}
	return discovery, result.Error
}

func (d *DatabaseConnection) GetWsdlDiscovery(id uuid.UUID) (*WsdlDiscovery, error) {
	var discovery WsdlDiscovery
	if err := d.db.Where("id = ?", id).First(&discovery).Error; err != nil {
		return nil, err
	}
	return &discovery, nil
}

func (d *DatabaseConnection) ListWsdlDiscoveries(filter WsdlDiscoveryFilter) (items []*WsdlDiscovery, count int64, err error) {
	query := d.db.Model(&WsdlDiscovery{})
	if filter.WorkspaceID > 0 {
		query = query.Where("workspace_id = ?", filter.WorkspaceID)
	}
	if filter.Target != "" {
		query = query.Where("target = ?", filter.Target)
	}
	if err = query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err = query.Order("created_at desc").Scopes(Paginate(&filter.Pagination)).Find(&items).Error
	return items, count, err
}
