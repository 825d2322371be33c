package schema

// Level classifies an education entry.
type Level string

const (
	LevelSPM     Level = "spm"
	LevelMaster  Level = "master"
	LevelDiploma Level = "diploma"
	LevelDegree  Level = "degree"
)

// EducationEntry belongs to exactly one profile, related by the owning
// user's id on the backend. A nil ID means the entry is not persisted yet.
type EducationEntry struct {
	ID          *int64   `json:"id,omitempty"`
	Location    string   `json:"location"`
	Level       Level    `json:"level"`
	Achievement *string  `json:"achievement,omitempty"`
	Files       *FileRef `json:"files,omitempty"`
}
