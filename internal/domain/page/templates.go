package page

// Page templates in HTML format

// BaseTemplate is the base layout for all event pages
const BaseTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: 'Georgia', 'Times New Roman', serif;
            background-color: #faf8f5;
            color: #2b2b2b;
        }
        .container {
            max-width: 1080px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        .gallery {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(280px, 1fr));
            gap: 12px;
        }
        .gallery img {
            width: 100%;
            display: block;
            border-radius: 4px;
        }
        .footer {
            text-align: center;
            margin-top: 48px;
            color: #9a9a9a;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="container">
        {{.Content}}
        <div class="footer">
            <p>Wedloom &middot; {{.Year}}</p>
        </div>
    </div>
</body>
</html>
`

// ClassicTemplate is the baseline event page
const ClassicTemplate = `
<div class="page-classic">
    <header style="text-align: center; margin-bottom: 40px;">
        {{if .Event.CoverImageURL}}
        <img src="{{.Event.CoverImageURL}}" alt="{{.Event.Title}}" style="max-width: 100%; border-radius: 8px;">
        {{end}}
        <h1 style="font-size: 36px; margin: 24px 0 8px;">{{.Event.Title}}</h1>
        <p style="color: #8a7f72;">{{.Event.Date.Format "January 2, 2006"}}</p>
        {{if .Event.Description}}<p>{{.Event.Description}}</p>{{end}}
    </header>
    <div class="gallery">
        {{range .Photos}}
        <img src="{{.SecureURL}}" loading="lazy" alt="">
        {{end}}
    </div>
    {{if not .Photos}}<p style="text-align: center; color: #9a9a9a;">Photos are on their way.</p>{{end}}
</div>
`

// EditorialTemplate lays photos out magazine style with a side header
const EditorialTemplate = `
<div class="page-editorial" style="display: flex; gap: 40px; flex-wrap: wrap;">
    <aside style="flex: 0 0 280px;">
        <h1 style="font-size: 28px; letter-spacing: 2px; text-transform: uppercase;">{{.Event.Title}}</h1>
        <p style="color: #8a7f72;">{{.Event.Date.Format "02.01.2006"}}</p>
        {{if .Event.Description}}<p style="font-style: italic;">{{.Event.Description}}</p>{{end}}
    </aside>
    <main style="flex: 1; min-width: 300px;">
        <div class="gallery" style="grid-template-columns: repeat(auto-fill, minmax(320px, 1fr));">
            {{range .Photos}}
            <img src="{{.SecureURL}}" loading="lazy" alt="">
            {{end}}
        </div>
        {{if not .Photos}}<p style="color: #9a9a9a;">Photos are on their way.</p>{{end}}
    </main>
</div>
`

// NoirTemplate is the dark variant
const NoirTemplate = `
<div class="page-noir" style="background: #111; color: #eee; margin: -40px -20px; padding: 40px 20px;">
    <header style="text-align: center; margin-bottom: 40px;">
        <h1 style="font-size: 32px; font-weight: 300; letter-spacing: 4px;">{{.Event.Title}}</h1>
        <p style="color: #777;">{{.Event.Date.Format "January 2, 2006"}}</p>
    </header>
    <div class="gallery">
        {{range .Photos}}
        <img src="{{.SecureURL}}" loading="lazy" alt="" style="filter: grayscale(20%);">
        {{end}}
    </div>
    {{if not .Photos}}<p style="text-align: center; color: #777;">Photos are on their way.</p>{{end}}
</div>
`

// NotFoundTemplate renders when a slug resolves to nothing
const NotFoundTemplate = `
<div class="page-not-found" style="text-align: center; padding: 80px 0;">
    <h1 style="font-size: 32px;">Page not found</h1>
    <p style="color: #8a7f72;">The event you are looking for does not exist or has been removed.</p>
</div>
`
