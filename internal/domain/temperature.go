package domain

// Temperature is a reading in degrees Celsius
type Temperature float64

// TemperatureFromTenths converts a tenths-of-degree reading.
func TemperatureFromTenths(raw int64) Temperature {
	return Temperature(float64(raw) / 10)
}

// Celsius returns the reading as a plain float
func (t Temperature) Celsius() float64 {
	return float64(t)
}
