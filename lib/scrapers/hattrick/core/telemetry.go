package core

import "htassist/lib/telemetry"

var tracer = telemetry.Tracer("htassist.lib.scrapers.hattrick.core")

const (
	report_client_open     = "client.open"
	report_client_close    = "client.close"
	report_client_request  = "client.request"
	report_client_state    = "client.state"
	report_client_app_err  = "client.app_error"
	report_client_continue = "client.continue"
)
