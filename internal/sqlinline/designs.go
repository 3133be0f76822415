package sqlinline

const QInsertDesign = `--sql a94e7d02-6c15-4b8f-8d3a-1f2e9c5b7d60
insert into generated_designs (
    user_id, jewelry_type, style, material, stone, gem_theme,
    size_category, finish, extra_text, final_prompt, image_path
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning id, created_at;
`

// QSelectDesignsByUser backs the history listing: the caller's designs only,
// newest first.
const QSelectDesignsByUser = `--sql c2b80f4e-9a67-4d21-b5e8-6d3f1a8c0e97
select id, jewelry_type, material, stone, image_path, final_prompt, created_at
from generated_designs
where user_id = $1
order by created_at desc;
`
