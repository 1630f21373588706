package parser

import "strings"

// defaultSchema is the shape the model is asked to fill in. It reads as a
// typed object literal, which models follow more reliably than prose.
const defaultSchema = `{
  personal: {
    name: string;
    email: string;
    phone: string;
    location: string;
    summary: string;
  };
  education: {
    degree: string;
    institution: string;
    location?: string;
    startDate?: string;
    endDate?: string;
    grade?: string;
  }[];
  work: {
    position: string;
    company: string;
    location?: string;
    startDate?: string;
    endDate?: string;
    description?: string[];
  }[];
  skills: string[];
  projects: {
    name: string;
    description: string;
    techStack?: string[];
    link?: string;
  }[];
  achievements: string[];
  certifications: {
    name: string;
    issuer?: string;
    date?: string;
  }[];
  interests: string[];
  links: {
    type: string;
    url: string;
  }[];
  custom?: {
    languages?: string[];
    publications?: {
      title: string;
      publisher?: string;
      year?: string;
    }[];
    [key: string]: any;
  };
}
`

// ResolveSchema picks the schema block for a request and builds the note
// listing extra fields. A blank custom schema falls back to the default.
// Extra fields keep their submission order with duplicates dropped.
func ResolveSchema(customSchema string, extraFields []string) (schemaBlock string, fieldsNote string) {
	schemaBlock = customSchema
	if strings.TrimSpace(schemaBlock) == "" {
		schemaBlock = defaultSchema
	}

	fields := dedupeFields(extraFields)
	if len(fields) > 0 {
		fieldsNote = "Also try to extract these custom fields: " + strings.Join(fields, ", ") +
			". JSON MUST HAVE THIS FIELD either with a value or NOT "
	}
	return schemaBlock, fieldsNote
}

func dedupeFields(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
