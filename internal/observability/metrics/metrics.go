package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the appointment flow.
type BookingMetrics struct {
	appointmentsTotal *prometheus.CounterVec
	paymentsTotal     *prometheus.CounterVec
	bookingAmount     prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmyglow",
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Appointments created, labeled by entry channel and payment status",
		}, []string{"source", "payment_status"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmyglow",
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Payment records written, labeled by mode and origin",
		}, []string{"payment_mode", "origin"}),
		bookingAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bookmyglow",
			Subsystem: "appointments",
			Name:      "amount",
			Help:      "Final charged amount per appointment",
			Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appointmentsTotal, m.paymentsTotal, m.bookingAmount)
	return m
}

func (m *BookingMetrics) ObserveAppointment(source, paymentStatus string, amount float64) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(source, paymentStatus).Inc()
	m.bookingAmount.Observe(amount)
}

func (m *BookingMetrics) ObservePayment(mode, origin string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(mode, origin).Inc()
}
