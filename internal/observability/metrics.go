package observability

const (
	MUsecaseRequests         MetricKey = "usecase_requests_total"
	MUsecaseDuration         MetricKey = "usecase_duration_seconds"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
	MEventsPublished         MetricKey = "events_published_total"
	MEventHandlerFailures    MetricKey = "event_handler_failures_total"
)

// MetricSpec describes how a metric is registered with a backend.
type MetricSpec struct {
	Key    MetricKey
	Help   string
	Labels []string
}

// CounterSpecs and HistogramSpecs are the instruments every process registers.
var (
	CounterSpecs = []MetricSpec{
		{MUsecaseRequests, "Total number of use case invocations.", []string{"use_case", "outcome"}},
		{MHTTPRequests, "Total number of HTTP requests.", []string{"method", "route", "status"}},
		{MExternalRequests, "Calls to outbound ports.", []string{"peer", "endpoint", "outcome"}},
		{MEventsPublished, "Events accepted by the event bus.", []string{"event"}},
		{MEventHandlerFailures, "Event handler errors and panics.", []string{"event"}},
	}
	HistogramSpecs = []MetricSpec{
		{MUsecaseDuration, "Duration of use case execution in seconds.", []string{"use_case"}},
		{MHTTPRequestDuration, "HTTP request latency in seconds.", []string{"method", "route", "status"}},
		{MExternalRequestDuration, "Outbound port call latency in seconds.", []string{"peer", "endpoint"}},
	}
)
