package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# RoadReport configuration
version: "1.0"

api:
  # Analysis service: POST {service_url}/upload, GET {service_url}/health
  service_url: "http://localhost:8000"
  # Connectivity checks: GET {api_base_url}/v1/connect_check and /v1/db_check
  api_base_url: "http://localhost:8000/api"
  # Request timeout, 0 waits indefinitely
  timeout: 0s

intake:
  # Folder watched for new video files while the TUI runs (empty disables)
  drop_dir: ""
  # Additional extensions treated as video, e.g. [".dav"]
  extra_video_extensions: []

ui:
  # default | high-contrast | minimal
  theme: "default"
  no_emoji: false
  # Diagnostics are written here while the TUI owns the terminal
  log_file: ""
  # auto | osc52 | file
  # osc52 cannot tell whether the terminal accepted the text; use file on
  # terminals without OSC 52 support to always get a saved report
  clipboard: "auto"

output:
  # text | json | markdown | csv
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false

profile:
  name: "홍길동"
  email: "user@example.com"
  join_date: "2025-12-01"
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
api:
  service_url: "http://localhost:8000"
  api_base_url: "http://localhost:8000/api"
output:
  default_format: "text"
profile:
  name: ""
  email: ""
`
}
