// Package config provides configuration parsing for Wayfind projects.
//
// The configuration is stored in wayfind.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-app",
//	  "paths": {
//	    "pages": "app/pages",
//	    "layouts": "app/layouts"
//	  },
//	  "output": "dist",
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "hotReload": true
//	  },
//	  "generator": {
//	    "layouts": true,
//	    "extensions": [".go"]
//	  },
//	  "publish": {
//	    "bucket": "my-app-assets",
//	    "prefix": "releases",
//	    "region": "us-east-1"
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
//	fmt.Println("Pages:", cfg.PagesPath())
package config
