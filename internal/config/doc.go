// Package config provides configuration parsing for synthdom.
//
// The configuration is stored in synthdom.json. This package handles
// loading, saving, and validating configuration, and applies environment
// overrides.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "xhtml": false,
//	    "doctype": "<!DOCTYPE html>"
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "synthdom"
//	  },
//	  "output": {
//	    "dir": "out",
//	    "s3": {
//	      "bucket": "my-site",
//	      "prefix": "pages/",
//	      "region": "eu-west-1"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
