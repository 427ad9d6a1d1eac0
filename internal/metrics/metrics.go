package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

// Collector holds the rack gauges exported on /metrics.
type Collector struct {
	SlotsOccupied *prometheus.GaugeVec
	Slot          *prometheus.GaugeVec
	Temperature   prometheus.Gauge
	ReadErrors    *prometheus.CounterVec
	Backend       *prometheus.GaugeVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		SlotsOccupied: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crate_slots_occupied",
				Help: "Number of occupied slots in the crate.",
			},
			[]string{"backend"},
		),
		Slot: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crate_slot_occupied",
				Help: "1 when the slot holds an item, 0 otherwise.",
			},
			[]string{"slot"},
		),
		Temperature: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "crate_temperature_celsius",
				Help: "Last temperature read from the crate thermometer.",
			},
		),
		ReadErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crate_read_errors_total",
				Help: "Failed hardware reads by source.",
			},
			[]string{"source"},
		),
		Backend: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crate_backend_info",
				Help: "Active occupancy backend, always 1.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(c.SlotsOccupied, c.Slot, c.Temperature, c.ReadErrors, c.Backend)
	return c
}

// ObserveBackend records which backend the detector picked
func (c *Collector) ObserveBackend(kind domain.BackendKind) {
	c.Backend.Reset()
	c.Backend.WithLabelValues(kind.String()).Set(1)
}

// ObserveOccupancy publishes a snapshot
func (c *Collector) ObserveOccupancy(kind domain.BackendKind, grid domain.OccupancyGrid) {
	c.SlotsOccupied.WithLabelValues(kind.String()).Set(float64(grid.Occupied()))
	for n := 1; n <= domain.SlotCount; n++ {
		full, _ := grid.Slot(n)
		v := 0.0
		if full {
			v = 1
		}
		c.Slot.WithLabelValues(strconv.Itoa(n)).Set(v)
	}
}

// ObserveTemperature publishes a temperature reading
func (c *Collector) ObserveTemperature(t domain.Temperature) {
	c.Temperature.Set(t.Celsius())
}

// ObserveError counts a failed read from source ("occupancy" or "temperature")
func (c *Collector) ObserveError(source string) {
	c.ReadErrors.WithLabelValues(source).Inc()
}
