package theme

// Built-in public templates, used when no public theme directory is
// configured. A custom theme replaces all of them at once.

var publicDefaults = []namedTemplate{
	{"home.html", defaultHome},
	{"page.html", defaultPage},
	{"404.html", default404},
}

const publicStyle = `
<style>
    body { max-width: 720px; margin: auto; font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; }
    a { text-decoration: none; }
    header { border-bottom: 1px solid gray; }
    header p { margin-top: 2px; color: gray; font-size: small; }
    footer { border-top: 1px solid gray; }
    footer p { color: gray; font-size: small; }
    blockquote { margin: 0; padding: 1px 0 1px 16px; border-left: 6px solid lightgray; color: gray; }
    img { max-width: 100%; }
    .preview-banner { color: red; }
</style>
`

const defaultHeader = `<header>
    <h2 style="margin-bottom: 0;"><a href="/" style="color: gray;">{{.blogTitle}}</a></h2>
    <p>{{.blogDescription}}</p>
</header>`

const defaultFooter = `<footer><p>{{.footerLine}}</p></footer>`

const defaultHome = `<!doctype html>
<html>
<head>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.title}}</title>
    ` + publicStyle + `
</head>
<body>
    ` + defaultHeader + `
    {{if not .pageList}}
        <br><br>
        <p>Nothing here, yet.</p>
    {{end}}
    {{range .pageList}}
        <h3><a href="/{{.Meta.Slug}}">{{.Meta.Title}}</a></h3>
    {{end}}
    ` + defaultFooter + `
</body>
</html>
`

const defaultPage = `<!doctype html>
<html>
<head>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.title}}</title>
    ` + publicStyle + `
</head>
<body>
    ` + defaultHeader + `
    {{if .isPreview}}<h1 class="preview-banner">[PREVIEW]</h1>{{end}}
    <div class="main">
    {{.content}}
    </div>
    <nav>
        {{with .nextPage}}<a href="/{{.Meta.Slug}}">&larr; {{.Meta.Title}}</a>{{end}}
        {{if and .nextPage .prevPage}} &middot; {{end}}
        {{with .prevPage}}<a href="/{{.Meta.Slug}}">{{.Meta.Title}} &rarr;</a>{{end}}
    </nav>
    ` + defaultFooter + `
</body>
</html>
`

const default404 = `<!doctype html>
<html>
<head>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.blogTitle}}</title>
    ` + publicStyle + `
</head>
<body>
    ` + defaultHeader + `
    <p style="color: gray; font-size: small; margin: 0;">404 Not Found</p>
    <h1>Oops! That page can't be found!</h1>
    <p>
        The page you're looking for is nowhere to be found.
        A search party should soon be dispatched to find it.
    </p>
    <p><a href="/">Visit Homepage</a></p>
    ` + defaultFooter + `
</body>
</html>
`
