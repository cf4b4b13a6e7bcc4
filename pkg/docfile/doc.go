// Package docfile is the document I/O collaborator: it moves whole JSON
// documents between document.Value trees and their storage, nothing more.
//
// Responsibilities:
//   - Source reads, writes, and probes one document per path.
//   - FileSource is the production implementation: UTF-8 JSON files,
//     pretty-printed, parent directories created on write.
//   - MemorySource backs tests and examples without touching the filesystem.
//
// Absence is part of the Read contract (ok=false, nil error), not a failure;
// unparsable content is reported as *ParseError so callers can tell "not
// there yet" from "there but unreadable".
package docfile
