package pubmed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorag/gliorag/internal/models"
)

const sampleArticleXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>25079102</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2014</Year></PubDate>
          </JournalIssue>
          <Title>The Lancet Oncology</Title>
        </Journal>
        <ArticleTitle>EANO guideline for the diagnosis and treatment of anaplastic gliomas and glioblastoma</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Gliomas are the most common brain tumours.</AbstractText>
          <AbstractText Label="METHODS">A task force reviewed the evidence.</AbstractText>
        </Abstract>
        <PublicationTypeList>
          <PublicationType>Practice Guideline</PublicationType>
          <PublicationType>Review</PublicationType>
        </PublicationTypeList>
      </Article>
      <MeshHeadingList>
        <MeshHeading><DescriptorName>Glioblastoma</DescriptorName></MeshHeading>
        <MeshHeading><DescriptorName>Humans</DescriptorName></MeshHeading>
      </MeshHeadingList>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="doi">10.1016/S1470-2045(14)70011-7</ArticleId>
        <ArticleId IdType="pmcid">PMC1234567</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>99999</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><MedlineDate>2010 Jan-Feb</MedlineDate></PubDate>
          </JournalIssue>
          <Title>Neuro-Oncology</Title>
        </Journal>
        <ArticleTitle>Consensus on glioblastoma imaging</ArticleTitle>
        <Abstract>
          <AbstractText>Unlabeled abstract body.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestParseArticleXML(t *testing.T) {
	records, err := ParseArticleXML([]byte(sampleArticleXML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "25079102", first.PMID)
	assert.Equal(t, "PMC1234567", first.PMCID)
	assert.Equal(t, "10.1016/S1470-2045(14)70011-7", first.DOI)
	assert.Equal(t, "EANO guideline for the diagnosis and treatment of anaplastic gliomas and glioblastoma", first.Title)
	assert.Equal(t, "BACKGROUND: Gliomas are the most common brain tumours.\nMETHODS: A task force reviewed the evidence.", first.Abstract)
	assert.Equal(t, "The Lancet Oncology", first.Journal)
	assert.Equal(t, "2014", first.Year)
	assert.Equal(t, []string{"Glioblastoma", "Humans"}, first.MeshTerms)
	assert.Equal(t, []string{"Practice Guideline", "Review"}, first.PubTypes)
	assert.Equal(t, models.SourceTypePubMedGuideline, first.SourceType)

	second := records[1]
	assert.Equal(t, "99999", second.PMID)
	assert.Equal(t, "2010 Jan-Feb", second.Year, "falls back to MedlineDate")
	assert.Equal(t, "Unlabeled abstract body.", second.Abstract)
	assert.Empty(t, second.DOI)
}

func TestParseArticleXML_Empty(t *testing.T) {
	records, err := ParseArticleXML([]byte("  \n "))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseArticleXML_Invalid(t *testing.T) {
	_, err := ParseArticleXML([]byte("<PubmedArticleSet>"))
	assert.Error(t, err)
}
