package command

const (
	DefaultPprofAddress  = "127.0.0.1:6060"
	DefaultJaegerAddress = "http://localhost:14268/api/traces"
	DefaultServiceName   = "eql"
	DefaultLogLevel      = "INFO"
	DefaultHistoryFile   = ".eql_history"
)

const (
	JSONOutputFlag    = "json"
	PprofFlag         = "pprof"
	PprofAddressFlag  = "pprof-address"
	JaegerFlag        = "jaeger"
	JaegerAddressFlag = "jaeger-address"
)
