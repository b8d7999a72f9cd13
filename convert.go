package main

import (
	"math"

	"github.com/wbtools/wb2littler/littler"
	"github.com/wbtools/wb2littler/wb"
)

const (
	platform = "FM-35 TEMP" // upper-air sounding
	source   = "WindBorne"
)

// toRecord maps one WindBorne observation to a single-level little-R
// record. Anything the observation doesn't report becomes littler.Missing.
func toRecord(o wb.Observation) littler.Record {
	l := littler.MissingLevel()
	l.Pressure = convert(o.Pressure, 100, 0)          // hPa to Pa
	l.Height = convert(o.Altitude, 1, 0)              // m
	l.Temperature = convert(o.Temperature, 1, 273.15) // C to K
	l.WindU = convert(o.SpeedU, 1, 0)
	l.WindV = convert(o.SpeedV, 1, 0)
	l.RelativeHumidity = convert(o.Humidity, 1, 0)
	if o.SpeedU != nil && o.SpeedV != nil {
		l.WindSpeed, l.WindDirection = wind(*o.SpeedU, *o.SpeedV)
	}

	return littler.Record{
		Latitude:   convert(o.Latitude, 1, 0),
		Longitude:  convert(o.Longitude, 1, 0),
		ID:         o.ID,
		Name:       o.MissionName,
		Platform:   platform,
		Source:     source,
		Elevation:  littler.Missing,
		IsSounding: true,
		Date:       o.Time(),
		Levels:     []littler.Level{l},
	}
}

func convert(v *float64, scale, offset float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return littler.Missing
	}
	return *v*scale + offset
}

// wind returns the speed and the meteorological direction (where the
// wind blows from, degrees clockwise from north) of the vector (u, v).
func wind(u, v float64) (speed, direction float64) {
	speed = math.Hypot(u, v)
	if speed == 0 {
		return 0, 0
	}
	direction = math.Mod(math.Atan2(-u, -v)*180/math.Pi+360, 360)
	return speed, direction
}
