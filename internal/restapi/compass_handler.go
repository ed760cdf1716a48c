package restapi

import (
	"net/http"
	"net/url"

	"compass.qibla.app/internal/bearing"
	"compass.qibla.app/internal/models"
	"compass.qibla.app/internal/utils"
)

func (api *RestAPI) compassHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractParamFromRequest(r, "angle")

	angle, fieldErrors := utils.ParseRequiredFloatParam(url.Values{"angle": {raw}}, "angle", nil)
	if len(fieldErrors) == 0 {
		if err := utils.ValidateAngle(angle); err != nil {
			fieldErrors["angle"] = append(fieldErrors["angle"], err.Error())
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	normalized, err := bearing.NormalizeAngle(angle)
	api.Metrics.ObserveComputation("normalize_angle", err)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	tag := utils.NegotiateLanguage(r)
	w.Header().Set("Content-Language", tag.String())

	entry := models.CompassEntry{
		Angle:              angle,
		Normalized:         normalized,
		Index:              bearing.CompassIndex(normalized),
		Direction:          bearing.CompassLabel(normalized),
		LocalizedDirection: bearing.LocalizedCompassLabel(normalized, tag),
		Language:           tag.String(),
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
