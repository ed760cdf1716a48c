package restapi

import (
	"net/http"

	"github.com/twpayne/go-polyline"

	"compass.qibla.app/internal/bearing"
	"compass.qibla.app/internal/models"
	"compass.qibla.app/internal/utils"
)

const defaultPathPoints = 64

func (api *RestAPI) pathHandler(w http.ResponseWriter, r *http.Request) {
	observer, fieldErrors := parseObserver(r, nil)
	points, fieldErrors := utils.ParseIntParam(r.URL.Query(), "points", defaultPathPoints, fieldErrors)
	if _, failed := fieldErrors["points"]; !failed {
		if err := utils.ValidatePathPoints(points); err != nil {
			fieldErrors["points"] = append(fieldErrors["points"], err.Error())
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	target := api.Config.Target
	path, err := bearing.GreatCirclePath(observer, target, points)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	coords := make([][]float64, 0, len(path))
	for _, point := range path {
		coords = append(coords, []float64{point.Lat, point.Lon})
	}
	encodedPoints := string(polyline.EncodeCoords(coords))

	entry := models.PathEntry{
		TargetID: models.TargetID,
		Length:   len(encodedPoints),
		Count:    len(coords),
		Points:   encodedPoints,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewTargetReferences(target)))
}
