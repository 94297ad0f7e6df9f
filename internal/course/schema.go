package course

// recordSchema describes a single module node as delivered by a course
// export. Fields the app never reads (publishDate, progression, content...)
// are allowed through untouched.
const recordSchema = `{
  "type": "object",
  "required": ["id", "name", "position", "state"],
  "properties": {
    "id":       {"type": "string", "minLength": 1},
    "name":     {"type": "string", "minLength": 1},
    "position": {"type": "integer"},
    "state":    {"enum": ["locked", "unlocked", "started", "completed"]},
    "unlockAt": {"type": ["string", "null"]},
    "prerequisiteModuleIds": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "moduleItems": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "title", "type"],
        "properties": {
          "id":    {"type": "string"},
          "title": {"type": "string"},
          "type":  {"type": "string"},
          "completionRequirement": {
            "type": ["object", "null"],
            "required": ["completed"],
            "properties": {
              "type":      {"type": "string"},
              "completed": {"type": "boolean"}
            }
          }
        }
      }
    },
    "submissionStatistics": {
      "type": ["object", "null"],
      "required": ["graded", "ungraded", "notSubmitted"],
      "properties": {
        "graded":       {"type": "integer", "minimum": 0},
        "ungraded":     {"type": "integer", "minimum": 0},
        "notSubmitted": {"type": "integer", "minimum": 0}
      }
    }
  }
}`
