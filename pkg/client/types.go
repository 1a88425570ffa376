package client

import "time"

type (
	Field    string
	Operator string
)

const (
	Equals      Operator = "EQUALS"
	NotEquals   Operator = "NOT_EQUALS"
	GreaterThan Operator = "GREATER_THAN"
	LessThan    Operator = "LESS_THAN"
	Contains    Operator = "CONTAINS"
	HasValue    Operator = "HAS_VALUE"
)

const (
	CrashDate       Field = "CRASH_DATE"
	CrashTime       Field = "CRASH_TIME"
	Borough         Field = "BOROUGH"
	ZipCode         Field = "ZIP_CODE"
	Latitude        Field = "LATITUDE"
	Longitude       Field = "LONGITUDE"
	OnStreetName    Field = "ON_STREET_NAME"
	CrossStreetName Field = "CROSS_STREET_NAME"
	OffStreetName   Field = "OFF_STREET_NAME"
	CollisionId     Field = "COLLISION_ID"
)

// Collision is a record as returned by the server. Absent values are nil.
type Collision struct {
	Id                         uint64   `json:"id"`
	CrashDate                  *string  `json:"crash_date"`
	CrashTime                  *string  `json:"crash_time"`
	Borough                    *string  `json:"borough"`
	ZipCode                    *int64   `json:"zip_code"`
	Latitude                   *float64 `json:"latitude"`
	Longitude                  *float64 `json:"longitude"`
	Location                   *string  `json:"location"`
	OnStreetName               *string  `json:"on_street_name"`
	CrossStreetName            *string  `json:"cross_street_name"`
	OffStreetName              *string  `json:"off_street_name"`
	NumberOfPersonsInjured     *int64   `json:"number_of_persons_injured"`
	NumberOfPersonsKilled      *int64   `json:"number_of_persons_killed"`
	NumberOfPedestriansInjured *int64   `json:"number_of_pedestrians_injured"`
	NumberOfPedestriansKilled  *int64   `json:"number_of_pedestrians_killed"`
	NumberOfCyclistInjured     *int64   `json:"number_of_cyclist_injured"`
	NumberOfCyclistKilled      *int64   `json:"number_of_cyclist_killed"`
	NumberOfMotoristInjured    *int64   `json:"number_of_motorist_injured"`
	NumberOfMotoristKilled     *int64   `json:"number_of_motorist_killed"`
	ContributingFactorVehicle1 *string  `json:"contributing_factor_vehicle_1"`
	ContributingFactorVehicle2 *string  `json:"contributing_factor_vehicle_2"`
	ContributingFactorVehicle3 *string  `json:"contributing_factor_vehicle_3"`
	ContributingFactorVehicle4 *string  `json:"contributing_factor_vehicle_4"`
	ContributingFactorVehicle5 *string  `json:"contributing_factor_vehicle_5"`
	CollisionId                *int64   `json:"collision_id"`
	VehicleTypeCode1           *string  `json:"vehicle_type_code_1"`
	VehicleTypeCode2           *string  `json:"vehicle_type_code_2"`
	VehicleTypeCode3           *string  `json:"vehicle_type_code_3"`
	VehicleTypeCode4           *string  `json:"vehicle_type_code_4"`
	VehicleTypeCode5           *string  `json:"vehicle_type_code_5"`
}

type Stats struct {
	Records      int       `json:"records"`
	Version      string    `json:"version"`
	LoadedAt     time.Time `json:"loaded_at"`
	CacheEntries int       `json:"cache_entries"`
}
