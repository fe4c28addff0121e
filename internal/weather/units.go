package weather

// CToF converts Celsius to Fahrenheit. Absent values pass through as nil.
func CToF(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

// MSToMPH converts meters per second to miles per hour. Absent values pass
// through as nil.
func MSToMPH(ms *float64) *float64 {
	if ms == nil {
		return nil
	}
	mph := *ms * 2.237
	return &mph
}
