package selectors

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldSelectors is a priority-ordered list of CSS selectors per logical
// field. Target markup drifts constantly, so these are data, not code:
// long lists tried sequentially rather than risking a silent wrong match.
type FieldSelectors struct {
	Title        []string `yaml:"title"`
	Company      []string `yaml:"company"`
	Location     []string `yaml:"location"`
	Description  []string `yaml:"description"`
	Requirements []string `yaml:"requirements"`
}

// Tables maps a site domain to its selector lists, with a generic fallback
// for unrecognized domains.
type Tables struct {
	Sites   map[string]FieldSelectors `yaml:"sites"`
	Generic FieldSelectors            `yaml:"generic"`
}

// Load reads selector tables from a YAML file. A missing file falls back
// to the built-in tables so the pipeline works out of the box.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultTables(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read selector tables %s: %w", path, err)
	}

	tables := &Tables{}
	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("parse selector tables %s: %w", path, err)
	}
	if tables.Sites == nil {
		tables.Sites = map[string]FieldSelectors{}
	}
	if len(tables.Generic.Title) == 0 {
		tables.Generic = DefaultTables().Generic
	}
	return tables, nil
}

// For returns the selector lists for a domain, or the generic fallback.
func (t *Tables) For(domain string) FieldSelectors {
	for site, selectors := range t.Sites {
		if site != "" && strings.Contains(domain, site) {
			return selectors
		}
	}
	return t.Generic
}

// DefaultTables carries the known site-specific selector lists. They drift
// with site redesigns; override via configs/selectors.yaml instead of
// editing code.
func DefaultTables() *Tables {
	return &Tables{
		Sites: map[string]FieldSelectors{
			"linkedin.com": {
				Title: []string{
					"h1.t-24.t-bold.inline",
					`h1[class*="job-title"]`,
					`h1[class*="jobPosting"]`,
					".job-details-jobs-unified-top-card__job-title",
					".jobs-unified-top-card__job-title",
					"h1.jobs-unified-top-card__job-title-link",
					"h1",
				},
				Company: []string{
					".job-details-jobs-unified-top-card__company-name",
					".jobs-unified-top-card__company-name",
					`a[data-control-name="job_details_topcard_company_url"]`,
					".jobs-unified-top-card__company-name a",
					".company-name",
				},
				Location: []string{
					".job-details-jobs-unified-top-card__bullet",
					".jobs-unified-top-card__bullet",
					".jobs-unified-top-card__location",
					`[class*="location"]`,
				},
				Description: []string{
					".jobs-description-content__text",
					".jobs-box__html-content",
					".jobs-description",
					`[class*="description"]`,
				},
			},
			"indeed.com": {
				Title: []string{
					`h1[data-testid="jobsearch-JobInfoHeader-title"]`,
					"h1.jobsearch-JobInfoHeader-title",
					".jobsearch-JobInfoHeader-title",
					`h1[class*="jobTitle"]`,
					"h1",
				},
				Company: []string{
					`[data-testid="inlineHeader-companyName"]`,
					".jobsearch-InlineCompanyRating",
					".jobsearch-JobInfoHeader-subtitle a",
					`[class*="companyName"]`,
				},
				Location: []string{
					`[data-testid="job-location"]`,
					".jobsearch-JobMetadataHeader-iconLabel",
					`[class*="location"]`,
				},
				Description: []string{
					"#jobDescriptionText",
					".jobsearch-jobDescriptionText",
					`[class*="jobDescription"]`,
					".job-description",
				},
			},
			"glassdoor.com": {
				Title: []string{
					`[data-test="job-title"]`,
					".jobTitle",
					`[class*="jobTitle"]`,
					"h1",
				},
				Company: []string{
					`[data-test="employer-name"]`,
					".employerName",
					`[class*="employer"]`,
					`[class*="company"]`,
				},
				Location: []string{
					`[data-test="job-location"]`,
					".location",
					`[class*="location"]`,
				},
				Description: []string{
					`[data-test="jobDescriptionContent"]`,
					".jobDescriptionContent",
					`[class*="description"]`,
				},
			},
			"seek.com": {
				Title: []string{
					`[data-automation="job-detail-title"]`,
					`h1[data-testid="job-title"]`,
					`[data-testid="job-header-title"]`,
					".job-header h1",
					"h1",
				},
				Company: []string{
					`[data-automation="advertiser-name"]`,
					`[data-automation="job-detail-company-name"]`,
					`[data-testid="job-detail-company"]`,
					".company-name",
					`[data-automation="job-company-name"]`,
					`a[href*="/companies/"]`,
				},
				Location: []string{
					`[data-automation="job-detail-location"]`,
					`[data-testid="job-location"]`,
					".location",
					`[data-automation="job-location"]`,
				},
				Description: []string{
					`[data-automation="jobAdDetails"]`,
					`[data-automation="job-detail-description"]`,
					`[data-testid="job-description"]`,
					".job-description",
					`[data-automation="jobDescription"]`,
				},
				Requirements: []string{
					`[data-automation="job-requirements"]`,
					".requirements",
					".qualifications",
					`[data-testid="requirements"]`,
				},
			},
		},
		Generic: FieldSelectors{
			Title: []string{
				`h1[class*="job"]`,
				`h1[class*="title"]`,
				`h1[class*="position"]`,
				`h1[id*="job"]`,
				`h1[id*="title"]`,
				".job-title",
				".position-title",
				".role-title",
				"h1",
				`h2[class*="job"]`,
				`h2[class*="title"]`,
			},
			Company: []string{
				`[class*="company"]`,
				`[class*="employer"]`,
				`[class*="organization"]`,
				`[id*="company"]`,
				`a[href*="company"]`,
				".company-name",
				".employer-name",
			},
			Location: []string{
				`[class*="location"]`,
				`[class*="address"]`,
				`[class*="city"]`,
				`[id*="location"]`,
				".location",
				".address",
			},
			Description: []string{
				`[class*="description"]`,
				`[class*="content"]`,
				`[class*="details"]`,
				`[id*="description"]`,
				".job-description",
				".job-content",
				".job-details",
			},
			Requirements: []string{
				`[class*="requirement"]`,
				`[id*="requirement"]`,
				`[class*="qualification"]`,
				`[id*="qualification"]`,
			},
		},
	}
}
