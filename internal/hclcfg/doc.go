// Package hclcfg loads scan sessions from HCL files.
//
// A session file names the instrument connection, the channel groups and
// the scan cadence:
//
//	session "bench" {
//	  connection {
//	    transport = "serial"
//	    port      = "/dev/ttyUSB0"
//	    baud_rate = 9600
//	  }
//
//	  channels "probes" {
//	    ids      = [101, 102]
//	    function = "temperature"
//	    probe    = "K"
//	  }
//
//	  scan {
//	    interval = "2s"
//	    count    = 10
//	  }
//
//	  output {
//	    csv_path = "readings.csv"
//	  }
//	}
//
// Attribute expressions can reference process environment variables
// through the env object, e.g. port = env.K2700_PORT.
package hclcfg
