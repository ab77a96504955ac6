package metrics

// Namespace prefixes every metric this service exports
const Namespace = "financequest"

const (
	subsystemHTTP        = "http"
	subsystemEvents      = "events"
	subsystemProgression = "progression"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelSource    = "source"
	LabelLevel     = "level"
	LabelBadge     = "badge"
	LabelMilestone = "milestone"
	LabelCategory  = "category"
	LabelChange    = "change"
)

// unmatchedRoute labels requests that matched no route
const unmatchedRoute = "unmatched"

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HTTPSizeBuckets spans 64B to 1MiB in powers of four
var HTTPSizeBuckets = []float64{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

const (
	LogMsgEventPayloadUndecodable = "event payload could not be decoded for metrics"
	LogMsgMetricsRecorded         = "event metrics recorded"
)
