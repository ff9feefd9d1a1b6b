// Package backup preserves files the installer is about to overwrite and
// lets them be listed and restored later.
//
// Each backup is a timestamped set stored under the data directory:
//
//	<data>/ockit/backups/
//	└── {target}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// The target label is derived from the install destination with
// [TargetLabel], so project and global installs keep separate histories.
// manifest.json records every captured file with its original path, mode,
// and SHA256 checksum; [Manager.Restore] verifies the checksums before
// writing anything back.
//
//	mgr := backup.NewManager(backup.WithRetention(10))
//	manifest, err := mgr.Backup(label, []string{agentPath, skillDir})
//	...
//	err = mgr.Restore(label, manifest.ID)
//
// [Manager.Prune] drops the oldest sets beyond the retention count after
// each successful backup.
package backup
