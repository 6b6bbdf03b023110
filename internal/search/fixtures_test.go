package search

// Canned E-utilities responses shared by the package tests.

const sampleESearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE eSearchResult PUBLIC "-//NLM//DTD esearch 20060628//EN" "https://eutils.ncbi.nlm.nih.gov/eutils/dtd/20060628/esearch.dtd">
<eSearchResult>
  <Count>2</Count>
  <RetMax>2</RetMax>
  <RetStart>0</RetStart>
  <IdList>
    <Id>38000001</Id>
    <Id>38000002</Id>
  </IdList>
</eSearchResult>`

const emptyESearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult>
  <Count>0</Count>
  <RetMax>0</RetMax>
  <RetStart>0</RetStart>
  <IdList/>
  <ErrorList>
    <PhraseNotFound>zzzqqqxxx</PhraseNotFound>
  </ErrorList>
</eSearchResult>`

const errorESearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><ERROR>Invalid query syntax</ERROR></eSearchResult>`

// sampleEFetchXML holds two articles: A with one industry author, B with
// only university authors.
const sampleEFetchXML = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">38000001</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <Volume>12</Volume>
            <PubDate>
              <Year>2023</Year>
              <Month>Mar</Month>
            </PubDate>
          </JournalIssue>
          <Title>Journal of Testing</Title>
        </Journal>
        <ArticleTitle>Targeting <i>KRAS</i> mutations &amp; resistance.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Smith</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
            <AffiliationInfo>
              <Affiliation>Acme Therapeutics, Cambridge, MA, USA. jane.smith@acmetx.com</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <LastName>Lee</LastName>
            <ForeName>Min</ForeName>
            <Initials>M</Initials>
            <AffiliationInfo>
              <Affiliation>Department of Biology, Example University, Boston, MA, USA.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">38000002</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <PubDate>
              <Year>2022</Year>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Cell biology of yeast.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Garcia</LastName>
            <ForeName>Ana</ForeName>
            <AffiliationInfo>
              <Affiliation>School of Medicine, Example College, Madrid, Spain.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

// edgeEFetchXML covers missing PMID, missing date, missing title, empty
// authors, and name defaults.
const edgeEFetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <ArticleTitle>Lost identifier</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">100</PMID>
      <Article>
        <AuthorList>
          <Author>
            <CollectiveName>The Consortium</CollectiveName>
          </Author>
          <Author/>
          <Author>
            <ForeName>Prince</ForeName>
          </Author>
          <Author>
            <LastName>Solo</LastName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">101</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>2020 Jan-Feb</MedlineDate>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle></ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`
