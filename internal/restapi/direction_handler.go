package restapi

import (
	"net/http"

	"compass.qibla.app/internal/bearing"
	"compass.qibla.app/internal/heading"
	"compass.qibla.app/internal/models"
	"compass.qibla.app/internal/utils"
)

// parseObserver reads and validates the required lat/lon query parameters
func parseObserver(r *http.Request, fieldErrors map[string][]string) (bearing.GeoCoordinate, map[string][]string) {
	query := r.URL.Query()
	lat, fieldErrors := utils.ParseRequiredFloatParam(query, "lat", fieldErrors)
	lon, fieldErrors := utils.ParseRequiredFloatParam(query, "lon", fieldErrors)
	if len(fieldErrors) > 0 {
		return bearing.GeoCoordinate{}, fieldErrors
	}
	for field, errs := range utils.ValidateLocationParams(lat, lon) {
		fieldErrors[field] = append(fieldErrors[field], errs...)
	}
	return bearing.GeoCoordinate{Lat: lat, Lon: lon}, fieldErrors
}

func (api *RestAPI) directionHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	observer, fieldErrors := parseObserver(r, nil)
	deviceHeading, fieldErrors := utils.ParseFloatParam(query, "heading", fieldErrors)

	declination := api.Config.Declination
	if query.Has("declination") {
		declination, fieldErrors = utils.ParseFloatParam(query, "declination", fieldErrors)
	}

	if _, failed := fieldErrors["heading"]; !failed {
		if err := utils.ValidateAngle(deviceHeading); err != nil {
			fieldErrors["heading"] = append(fieldErrors["heading"], err.Error())
		}
	}
	if _, failed := fieldErrors["declination"]; !failed {
		if err := utils.ValidateDeclination(declination); err != nil {
			fieldErrors["declination"] = append(fieldErrors["declination"], err.Error())
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	target := api.Config.Target

	qibla, err := bearing.InitialBearing(observer, target)
	api.Metrics.ObserveComputation("initial_bearing", err)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	trueHeading, err := heading.TrueHeading(deviceHeading, declination)
	api.Metrics.ObserveComputation("normalize_angle", err)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	rotation, err := bearing.DisplayRotation(qibla, trueHeading, api.Config.ArrowOffset)
	api.Metrics.ObserveComputation("display_rotation", err)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	distance, err := bearing.DistanceKm(observer, target)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	tag := utils.NegotiateLanguage(r)
	w.Header().Set("Content-Language", tag.String())

	entry := models.DirectionEntry{
		TargetID:           models.TargetID,
		Observer:           observer,
		Bearing:            qibla,
		Heading:            trueHeading,
		Declination:        declination,
		ArrowOffset:        api.Config.ArrowOffset,
		Rotation:           rotation,
		Direction:          bearing.CompassLabel(qibla),
		LocalizedDirection: bearing.LocalizedCompassLabel(qibla, tag),
		Language:           tag.String(),
		DistanceKm:         distance,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewTargetReferences(target)))
}
