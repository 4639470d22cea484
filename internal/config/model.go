package config

// Model is the wire shape of the HCL settings file, decoded directly by
// gohcl before being converted into a Config by FromModel.
type Model struct {
	StallInterval      string `hcl:"stall_interval,optional"`
	BridgeAddr         string `hcl:"bridge_addr,optional"`
	BridgeNamespace    string `hcl:"bridge_namespace,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
	LogFormat          string `hcl:"log_format,optional"`
	LogLevel           string `hcl:"log_level,optional"`
	WorkerCount        int    `hcl:"worker_count,optional"`
}
