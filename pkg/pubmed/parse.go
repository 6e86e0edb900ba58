package pubmed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/oncorag/gliorag/internal/models"
)

type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Medline struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Sections []abstractSection `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				Title string `xml:"Title"`
				Issue struct {
					PubDate struct {
						Year        string `xml:"Year"`
						MedlineDate string `xml:"MedlineDate"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			PubTypes []string `xml:"PublicationTypeList>PublicationType"`
		} `xml:"Article"`
		MeshHeadings []struct {
			Descriptor string `xml:"DescriptorName"`
		} `xml:"MeshHeadingList>MeshHeading"`
	} `xml:"MedlineCitation"`
	IDs []articleID `xml:"PubmedData>ArticleIdList>ArticleId"`
}

type abstractSection struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type articleID struct {
	Type  string `xml:"IdType,attr"`
	Value string `xml:",chardata"`
}

// ParseArticleXML extracts literature records from one EFetch PubMed XML
// response: PMID, title, labeled abstract sections, journal, year (falling
// back to MedlineDate), MeSH descriptors, publication types, PMCID and DOI.
func ParseArticleXML(data []byte) ([]models.LiteratureRecord, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse PubMed XML: %w", err)
	}

	records := make([]models.LiteratureRecord, 0, len(set.Articles))
	for _, art := range set.Articles {
		info := art.Medline.Article

		var abstractParts []string
		for _, sec := range info.Abstract.Sections {
			text := strings.TrimSpace(sec.Text)
			if sec.Label != "" {
				abstractParts = append(abstractParts, sec.Label+": "+text)
			} else if text != "" {
				abstractParts = append(abstractParts, text)
			}
		}

		year := info.Journal.Issue.PubDate.Year
		if year == "" {
			year = info.Journal.Issue.PubDate.MedlineDate
		}

		var mesh []string
		for _, mh := range art.Medline.MeshHeadings {
			if d := strings.TrimSpace(mh.Descriptor); d != "" {
				mesh = append(mesh, d)
			}
		}

		var pubTypes []string
		for _, pt := range info.PubTypes {
			if pt = strings.TrimSpace(pt); pt != "" {
				pubTypes = append(pubTypes, pt)
			}
		}

		var pmcid, doi string
		for _, id := range art.IDs {
			switch strings.ToLower(id.Type) {
			case "pmcid":
				pmcid = strings.TrimSpace(id.Value)
			case "doi":
				doi = strings.TrimSpace(id.Value)
			}
		}

		records = append(records, models.LiteratureRecord{
			PMID:       art.Medline.PMID,
			PMCID:      pmcid,
			DOI:        doi,
			Title:      strings.TrimSpace(info.Title),
			Abstract:   strings.Join(abstractParts, "\n"),
			Journal:    strings.TrimSpace(info.Journal.Title),
			Year:       strings.TrimSpace(year),
			MeshTerms:  mesh,
			PubTypes:   pubTypes,
			SourceType: models.SourceTypePubMedGuideline,
		})
	}

	return records, nil
}
