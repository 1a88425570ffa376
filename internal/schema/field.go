package schema

import (
	"github.com/collisiondb/collisiondb/internal/types"
)

// Field identifies a collision column. The numeric value is the column's
// position in the NYC collision CSV.
type Field int

const (
	CrashDate Field = iota
	CrashTime
	Borough
	ZipCode
	Latitude
	Longitude
	Location
	OnStreetName
	CrossStreetName
	OffStreetName
	NumberOfPersonsInjured
	NumberOfPersonsKilled
	NumberOfPedestriansInjured
	NumberOfPedestriansKilled
	NumberOfCyclistInjured
	NumberOfCyclistKilled
	NumberOfMotoristInjured
	NumberOfMotoristKilled
	ContributingFactorVehicle1
	ContributingFactorVehicle2
	ContributingFactorVehicle3
	ContributingFactorVehicle4
	ContributingFactorVehicle5
	CollisionId
	VehicleTypeCode1
	VehicleTypeCode2
	VehicleTypeCode3
	VehicleTypeCode4
	VehicleTypeCode5

	// FieldCount is the number of columns in a collision row.
	FieldCount int = iota
)

type fieldInfo struct {
	name string
	json string
	kind types.FieldKind
}

var fields = [FieldCount]fieldInfo{
	CrashDate:                  {"CRASH_DATE", "crash_date", types.FieldKindString},
	CrashTime:                  {"CRASH_TIME", "crash_time", types.FieldKindString},
	Borough:                    {"BOROUGH", "borough", types.FieldKindEnum},
	ZipCode:                    {"ZIP_CODE", "zip_code", types.FieldKindInteger},
	Latitude:                   {"LATITUDE", "latitude", types.FieldKindFloat},
	Longitude:                  {"LONGITUDE", "longitude", types.FieldKindFloat},
	Location:                   {"LOCATION", "location", types.FieldKindString},
	OnStreetName:               {"ON_STREET_NAME", "on_street_name", types.FieldKindString},
	CrossStreetName:            {"CROSS_STREET_NAME", "cross_street_name", types.FieldKindString},
	OffStreetName:              {"OFF_STREET_NAME", "off_street_name", types.FieldKindString},
	NumberOfPersonsInjured:     {"NUMBER_OF_PERSONS_INJURED", "number_of_persons_injured", types.FieldKindInteger},
	NumberOfPersonsKilled:      {"NUMBER_OF_PERSONS_KILLED", "number_of_persons_killed", types.FieldKindInteger},
	NumberOfPedestriansInjured: {"NUMBER_OF_PEDESTRIANS_INJURED", "number_of_pedestrians_injured", types.FieldKindInteger},
	NumberOfPedestriansKilled:  {"NUMBER_OF_PEDESTRIANS_KILLED", "number_of_pedestrians_killed", types.FieldKindInteger},
	NumberOfCyclistInjured:     {"NUMBER_OF_CYCLIST_INJURED", "number_of_cyclist_injured", types.FieldKindInteger},
	NumberOfCyclistKilled:      {"NUMBER_OF_CYCLIST_KILLED", "number_of_cyclist_killed", types.FieldKindInteger},
	NumberOfMotoristInjured:    {"NUMBER_OF_MOTORIST_INJURED", "number_of_motorist_injured", types.FieldKindInteger},
	NumberOfMotoristKilled:     {"NUMBER_OF_MOTORIST_KILLED", "number_of_motorist_killed", types.FieldKindInteger},
	ContributingFactorVehicle1: {"CONTRIBUTING_FACTOR_VEHICLE_1", "contributing_factor_vehicle_1", types.FieldKindString},
	ContributingFactorVehicle2: {"CONTRIBUTING_FACTOR_VEHICLE_2", "contributing_factor_vehicle_2", types.FieldKindString},
	ContributingFactorVehicle3: {"CONTRIBUTING_FACTOR_VEHICLE_3", "contributing_factor_vehicle_3", types.FieldKindString},
	ContributingFactorVehicle4: {"CONTRIBUTING_FACTOR_VEHICLE_4", "contributing_factor_vehicle_4", types.FieldKindString},
	ContributingFactorVehicle5: {"CONTRIBUTING_FACTOR_VEHICLE_5", "contributing_factor_vehicle_5", types.FieldKindString},
	CollisionId:                {"COLLISION_ID", "collision_id", types.FieldKindInteger},
	VehicleTypeCode1:           {"VEHICLE_TYPE_CODE_1", "vehicle_type_code_1", types.FieldKindString},
	VehicleTypeCode2:           {"VEHICLE_TYPE_CODE_2", "vehicle_type_code_2", types.FieldKindString},
	VehicleTypeCode3:           {"VEHICLE_TYPE_CODE_3", "vehicle_type_code_3", types.FieldKindString},
	VehicleTypeCode4:           {"VEHICLE_TYPE_CODE_4", "vehicle_type_code_4", types.FieldKindString},
	VehicleTypeCode5:           {"VEHICLE_TYPE_CODE_5", "vehicle_type_code_5", types.FieldKindString},
}

var by_name = func() map[string]Field {
	m := make(map[string]Field, FieldCount)
	for i, info := range fields {
		m[info.name] = Field(i)
	}
	return m
}()

// Lookup resolves a wire field name such as "ZIP_CODE".
func Lookup(name string) (Field, bool) {
	f, ok := by_name[name]
	return f, ok
}

// All returns every field in column order.
func All() []Field {
	all := make([]Field, FieldCount)
	for i := range all {
		all[i] = Field(i)
	}
	return all
}

func (f Field) IsValid() bool { return f >= 0 && int(f) < FieldCount }

func (f Field) String() string {
	if !f.IsValid() {
		return "UNDEFINED"
	}
	return fields[f].name
}

// JSONName is the key used for the field in a serialized collision.
func (f Field) JSONName() string {
	if !f.IsValid() {
		return ""
	}
	return fields[f].json
}

func (f Field) Kind() types.FieldKind {
	if !f.IsValid() {
		return ""
	}
	return fields[f].kind
}

func (f Field) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
