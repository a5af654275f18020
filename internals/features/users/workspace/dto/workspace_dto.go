package dto

import (
	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/users/workspace/model"
)

type WorkspaceResponse struct {
	Role              string       `json:"role"`
	HomePath          string       `json:"home_path"`
	Views             []model.View `json:"views"`
	DefaultView       model.View   `json:"default_view"`
	PuskesmasID       *uuid.UUID   `json:"puskesmas_id"`
	CanChooseFacility bool         `json:"can_choose_facility"`
	ProfileComplete   bool         `json:"profile_complete"`
}

func NewWorkspaceResponse(ws model.Workspace, profileComplete bool) WorkspaceResponse {
	views := ws.Views()
	def := model.ViewDashboard
	if len(views) > 0 {
		def = views[0]
	}
	return WorkspaceResponse{
		Role:              ws.Role(),
		HomePath:          ws.HomePath(),
		Views:             views,
		DefaultView:       def,
		PuskesmasID:       ws.PuskesmasID(),
		CanChooseFacility: model.CanChooseFacility(ws),
		ProfileComplete:   profileComplete,
	}
}
